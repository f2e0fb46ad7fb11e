package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sichrplace/discovery/internal/db"
	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/page"
	"github.com/sichrplace/discovery/internal/domain/search/plan"
)

// amenitySeparator joins amenity values inside a single tag field.
const amenitySeparator = ","

// store is the consumer interface for catalog operations (ISP).
type store interface {
	Search(ctx context.Context, q *db.ListingQuery) (*db.SearchResult, error)
	MinMax(ctx context.Context, index, field string, scope []plan.Predicate) (*db.MinMax, error)
	Distinct(ctx context.Context, index, field string, scope []plan.Predicate) ([]string, error)
	StreamAdd(ctx context.Context, stream string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
}

// Repo implements usecase/search.Catalog.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Query executes a listing query plan and returns the matched page plus
// the total match count across all pages.
func (r *Repo) Query(ctx context.Context, qp plan.QueryPlan) ([]listing.Record, int, error) {
	q := &db.ListingQuery{
		IndexName: domain.ListingIndexName,
		Plan:      qp,
	}

	sr, err := r.store.Search(ctx, q)
	if err != nil {
		return nil, 0, catalogErr("search listings", err)
	}

	records := make([]listing.Record, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		id := strings.TrimPrefix(entry.Key, domain.ListingKeyPrefix)
		records = append(records, parseEntry(id, entry.Fields))
	}

	return records, sr.Total, nil
}

// PriceRange returns the min and max price across the given scope, or nil
// when the scope matches nothing.
func (r *Repo) PriceRange(ctx context.Context, scope []plan.Predicate) (*page.PriceRange, error) {
	mm, err := r.store.MinMax(ctx, domain.ListingIndexName, plan.FieldPrice, scope)
	if err != nil {
		return nil, catalogErr("price range", err)
	}
	if mm == nil {
		return nil, nil
	}
	return &page.PriceRange{Min: mm.Min, Max: mm.Max}, nil
}

// PropertyTypes returns the distinct property type labels across the scope,
// sorted ascending.
func (r *Repo) PropertyTypes(ctx context.Context, scope []plan.Predicate) ([]string, error) {
	values, err := r.store.Distinct(ctx, domain.ListingIndexName, plan.FieldPropertyType, scope)
	if err != nil {
		return nil, catalogErr("property types", err)
	}
	return values, nil
}

// AppendAudit appends a search audit record to the audit stream.
func (r *Repo) AppendAudit(ctx context.Context, rec domain.AuditRecord) error {
	fields := map[string]string{
		"id":           rec.ID,
		"actor":        rec.Actor,
		"query":        rec.Query,
		"location":     rec.Location,
		"result_count": strconv.Itoa(rec.ResultCount),
		"ts":           strconv.FormatInt(rec.UnixMilli, 10),
	}

	if err := r.store.StreamAdd(ctx, domain.AuditStreamName, fields); err != nil {
		return fmt.Errorf("append audit %s: %w", rec.ID, err)
	}
	return nil
}

// Store writes listings into the catalog as index-backed hashes.
func (r *Repo) Store(ctx context.Context, records []listing.Record) error {
	if len(records) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, 0, len(records))
	for i := range records {
		rec := &records[i]
		items = append(items, db.HashSetItem{
			Key:    domain.ListingKeyPrefix + rec.ID(),
			Fields: recordFields(rec),
		})
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return catalogErr("store listings", err)
	}
	return nil
}

// catalogErr maps db failures onto catalog sentinels.
func catalogErr(op string, err error) error {
	if errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("%s: %w", op, domain.ErrCatalogUnavailable)
	}
	return fmt.Errorf("%s: %w: %v", op, domain.ErrCatalogQuery, err)
}

// parseEntry converts flat hash fields into a listing record. Malformed
// numerics degrade to zero values rather than failing the whole page.
func parseEntry(id string, fields map[string]string) listing.Record {
	price, _ := strconv.ParseFloat(fields[plan.FieldPrice], 64)
	bedrooms, _ := strconv.Atoi(fields[plan.FieldBedrooms])
	bathrooms, _ := strconv.Atoi(fields[plan.FieldBathrooms])
	createdAt, _ := strconv.ParseInt(fields[plan.FieldCreatedAt], 10, 64)

	return listing.Reconstruct(
		id,
		fields[plan.FieldTitle],
		fields[plan.FieldDescription],
		price, bedrooms, bathrooms,
		fields[plan.FieldPropertyType],
		splitAmenities(fields[plan.FieldAmenities]),
		fields[plan.FieldAddress],
		fields[plan.FieldCity],
		fields[plan.FieldRegion],
		fields[plan.FieldStatus],
		createdAt,
	)
}

// recordFields flattens a listing record into hash fields.
func recordFields(rec *listing.Record) map[string]string {
	return map[string]string{
		plan.FieldTitle:        rec.Title(),
		plan.FieldDescription:  rec.Description(),
		plan.FieldPrice:        strconv.FormatFloat(rec.Price(), 'f', -1, 64),
		plan.FieldBedrooms:     strconv.Itoa(rec.Bedrooms()),
		plan.FieldBathrooms:    strconv.Itoa(rec.Bathrooms()),
		plan.FieldPropertyType: rec.PropertyType(),
		plan.FieldAmenities:    strings.Join(rec.Amenities(), amenitySeparator),
		plan.FieldAddress:      rec.Address(),
		plan.FieldCity:         rec.City(),
		plan.FieldRegion:       rec.Region(),
		plan.FieldStatus:       rec.Status(),
		plan.FieldCreatedAt:    strconv.FormatInt(rec.CreatedAt(), 10),
	}
}

func splitAmenities(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, amenitySeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
