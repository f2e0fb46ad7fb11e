package search

import (
	"context"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/page"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// Catalog defines the storage contract for listing discovery.
type Catalog interface {
	// Query returns the page of listings matching the plan plus the
	// total match count across all pages.
	Query(ctx context.Context, qp plan.QueryPlan) ([]listing.Record, int, error)

	// PriceRange returns min/max price for the scope, nil when empty.
	PriceRange(ctx context.Context, scope []plan.Predicate) (*page.PriceRange, error)

	// PropertyTypes returns the distinct property types for the scope.
	PropertyTypes(ctx context.Context, scope []plan.Predicate) ([]string, error)

	// AppendAudit appends a search audit record to the audit trail.
	AppendAudit(ctx context.Context, rec domain.AuditRecord) error
}
