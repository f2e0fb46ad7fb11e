package catalog

import (
	"context"
	"testing"

	"github.com/sichrplace/discovery/internal/db"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn    func(ctx context.Context, q *db.ListingQuery) (*db.SearchResult, error)
	minMaxFn    func(ctx context.Context, index, field string, scope []plan.Predicate) (*db.MinMax, error)
	distinctFn  func(ctx context.Context, index, field string, scope []plan.Predicate) ([]string, error)
	streamAddFn func(ctx context.Context, stream string, fields map[string]string) error
	hSetMultiFn func(ctx context.Context, items []db.HashSetItem) error
}

func (m *mockStore) Search(ctx context.Context, q *db.ListingQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) MinMax(ctx context.Context, index, field string, scope []plan.Predicate) (*db.MinMax, error) {
	if m.minMaxFn != nil {
		return m.minMaxFn(ctx, index, field, scope)
	}
	return nil, nil
}

func (m *mockStore) Distinct(ctx context.Context, index, field string, scope []plan.Predicate) ([]string, error) {
	if m.distinctFn != nil {
		return m.distinctFn(ctx, index, field, scope)
	}
	return nil, nil
}

func (m *mockStore) StreamAdd(ctx context.Context, stream string, fields map[string]string) error {
	if m.streamAddFn != nil {
		return m.streamAddFn(ctx, stream, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hSetMultiFn != nil {
		return m.hSetMultiFn(ctx, items)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}

func sampleListings() []listing.Record {
	return []listing.Record{
		listing.Reconstruct(
			"l1", "Bright loft", "Sunny loft near the park",
			950, 2, 1,
			"apartment", []string{"wifi", "balcony"},
			"Hauptstr. 5", "Berlin", "Berlin", listing.StatusActive,
			1700000000000,
		),
		listing.Reconstruct(
			"l2", "Cozy studio", "Compact studio downtown",
			620, 1, 1,
			"studio", nil,
			"Marktplatz 2", "Munich", "Bavaria", listing.StatusActive,
			1700000100000,
		),
	}
}
