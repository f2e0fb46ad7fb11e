package db

import (
	"context"
	"time"

	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// Store is the catalog store facade combining all sub-interfaces.
// Consumers depend on the narrow sub-interfaces, never on Store directly.
type Store interface {
	Pinger
	HashStore
	IndexManager
	Searcher
	Auditor
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashSetItem holds a single key+fields pair for pipelined HSET.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore provides hash-based key-value operations for listing rows.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher executes structured listing queries and aggregates over an FT
// index.
type Searcher interface {
	Search(ctx context.Context, q *ListingQuery) (*SearchResult, error)
	MinMax(ctx context.Context, index, field string, scope []plan.Predicate) (*MinMax, error)
	Distinct(ctx context.Context, index, field string, scope []plan.Predicate) ([]string, error)
}

// Auditor appends entries to an audit stream.
type Auditor interface {
	StreamAdd(ctx context.Context, stream string, fields map[string]string) error
}

// ListingQuery is the input for a paginated, sorted listing search. The
// query plan is carried as structured predicates; the store adapter alone
// is responsible for rendering and escaping them.
type ListingQuery struct {
	IndexName    string
	Plan         plan.QueryPlan
	ReturnFields []string
}

// MinMax is a min/max aggregate result. Nil is returned instead when the
// scoped set is empty.
type MinMax struct {
	Min float64
	Max float64
}

// SearchResult is the ordered output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single row hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
