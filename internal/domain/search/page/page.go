package page

import (
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/search/params"
)

// PriceRange is the observed min/max price over the whole active catalog.
type PriceRange struct {
	Min float64
	Max float64
}

// Facets summarize the active catalog independently of the applied filter,
// so a UI can render the full selectable range even for narrow results.
type Facets struct {
	PriceRange    *PriceRange // nil when the catalog has no active listings
	PropertyTypes []string
}

// Result is one page of search results (response-scoped, immutable once
// constructed). Row order is preserved exactly as the catalog returned it.
type Result struct {
	Listings []listing.Record
	Page     int
	PageSize int
	Count    int
	HasMore  bool
	Facets   Facets
	Applied  params.SearchParameters
}
