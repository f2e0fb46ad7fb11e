package catalog

import (
	"context"
	"fmt"

	"github.com/sichrplace/discovery/internal/db"
	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// indexStore is the subset of db.Store needed for index bootstrap.
type indexStore interface {
	IndexExists(ctx context.Context, name string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
}

// EnsureIndex creates the listing search index when it does not exist yet.
// Safe to call on every startup.
func EnsureIndex(ctx context.Context, s indexStore) error {
	exists, err := s.IndexExists(ctx, domain.ListingIndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(domain.ListingIndexName).
		Prefix(domain.ListingKeyPrefix).
		TextSortable(plan.FieldTitle).
		Text(plan.FieldDescription).
		NumericSortable(plan.FieldPrice).
		NumericSortable(plan.FieldBedrooms).
		NumericSortable(plan.FieldBathrooms).
		Tag(plan.FieldPropertyType).
		TagWithSeparator(plan.FieldAmenities, amenitySeparator).
		Text(plan.FieldAddress).
		Text(plan.FieldCity).
		Text(plan.FieldRegion).
		Tag(plan.FieldStatus).
		NumericSortable(plan.FieldCreatedAt).
		MustBuild()

	if err := s.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}
