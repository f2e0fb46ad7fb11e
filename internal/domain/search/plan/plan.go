package plan

import (
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/params"
)

// Operator enumerates the predicate operators understood by the catalog.
type Operator string

// Catalog predicate operators.
const (
	OpEquals            Operator = "equals"
	OpGreaterOrEqual    Operator = "greaterOrEqual"
	OpLessOrEqual       Operator = "lessOrEqual"
	OpContainsSubstring Operator = "containsSubstring"
	OpContainsElement   Operator = "containsElement"
)

// Catalog field names predicates and sorts refer to.
const (
	FieldStatus       = "status"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldBedrooms     = "bedrooms"
	FieldBathrooms    = "bathrooms"
	FieldPropertyType = "property_type"
	FieldAmenities    = "amenities"
	FieldAddress      = "address"
	FieldCity         = "city"
	FieldRegion       = "region"
	FieldCreatedAt    = "created_at"
)

// Predicate is a single field/operator/value test. Values are carried as
// structured data all the way to the store adapter; no query string is ever
// assembled from caller input at this layer.
type Predicate struct {
	Field string
	Op    Operator
	Value any
}

// Group is a set of predicates combined with OR. Groups themselves combine
// with the rest of the plan via AND.
type Group []Predicate

// Sort is the single sort key of a plan.
type Sort struct {
	Field     string
	Ascending bool
}

// QueryPlan is the derived, immutable query: AND-ed predicates, OR groups,
// one sort key, and a zero-based pagination window.
type QueryPlan struct {
	Must   []Predicate
	Any    []Group
	Sort   Sort
	Offset int
	Limit  int
}

// ActiveOnly is the mandatory predicate present in every plan: only active
// listings are ever eligible.
func ActiveOnly() Predicate {
	return Predicate{Field: FieldStatus, Op: OpEquals, Value: listing.StatusActive}
}

// Build derives a QueryPlan from normalized parameters. Pure: no I/O.
//
// The active-status predicate always comes first. Each non-empty recognized
// field contributes exactly one predicate (or OR group); absent fields
// contribute nothing, so an all-empty input plans a "browse all active
// listings" query.
func Build(p *params.SearchParameters) QueryPlan {
	must := []Predicate{ActiveOnly()}
	var any []Group

	if q := p.QueryFold(); q != "" {
		any = append(any, Group{
			{Field: FieldTitle, Op: OpContainsSubstring, Value: q},
			{Field: FieldDescription, Op: OpContainsSubstring, Value: q},
		})
	}

	if loc := p.LocationFold(); loc != "" {
		any = append(any, Group{
			{Field: FieldAddress, Op: OpContainsSubstring, Value: loc},
			{Field: FieldCity, Op: OpContainsSubstring, Value: loc},
			{Field: FieldRegion, Op: OpContainsSubstring, Value: loc},
		})
	}

	if v := p.MinPrice(); v != nil {
		must = append(must, Predicate{Field: FieldPrice, Op: OpGreaterOrEqual, Value: *v})
	}
	if v := p.MaxPrice(); v != nil {
		must = append(must, Predicate{Field: FieldPrice, Op: OpLessOrEqual, Value: *v})
	}

	must = appendCount(must, FieldBedrooms, p.Bedrooms())
	must = appendCount(must, FieldBathrooms, p.Bathrooms())

	if t := p.PropertyType(); t != "" {
		must = append(must, Predicate{Field: FieldPropertyType, Op: OpEquals, Value: t})
	}

	for _, a := range p.Amenities() {
		must = append(must, Predicate{Field: FieldAmenities, Op: OpContainsElement, Value: a})
	}

	return QueryPlan{
		Must:   must,
		Any:    any,
		Sort:   buildSort(p),
		Offset: (p.Page() - 1) * p.PageSize(),
		Limit:  p.PageSize(),
	}
}

func appendCount(must []Predicate, field string, c params.Count) []Predicate {
	if !c.IsSet() {
		return must
	}
	if c.OrMore() {
		return append(must, Predicate{Field: field, Op: OpGreaterOrEqual, Value: float64(c.N())})
	}
	return append(must, Predicate{Field: field, Op: OpEquals, Value: float64(c.N())})
}

func buildSort(p *params.SearchParameters) Sort {
	field := FieldCreatedAt
	switch p.SortField() {
	case params.SortPrice:
		field = FieldPrice
	case params.SortBedrooms:
		field = FieldBedrooms
	case params.SortBathrooms:
		field = FieldBathrooms
	case params.SortTitle:
		field = FieldTitle
	case params.SortCreationTime:
		field = FieldCreatedAt
	}
	return Sort{Field: field, Ascending: p.Direction() == params.Ascending}
}
