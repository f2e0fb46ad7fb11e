package discovery

// SearchQuery carries raw filter inputs, all as strings the way they
// arrive from a form or URL. Unparseable optional values degrade to
// "absent" during normalization; only contradictory inputs fail.
type SearchQuery struct {
	Query        string
	Location     string
	MinPrice     string
	MaxPrice     string
	Bedrooms     string // "2" exact or "2+" at-least
	Bathrooms    string
	PropertyType string
	Amenities    string // comma-joined list
	SortBy       string // creationTime | price | bedrooms | bathrooms | title
	SortOrder    string // ascending | descending
	Page         string
	Limit        string
}

// Listing is one catalog row, both as a search result and as ingest
// input for AddListings.
type Listing struct {
	ID           string
	Title        string
	Description  string
	Price        float64
	Bedrooms     int
	Bathrooms    int
	PropertyType string
	Amenities    []string
	Address      string
	City         string
	Region       string
	Status       string // "active" listings are searchable
	CreatedAt    int64
}

// PriceRange is the observed min/max price over the whole active catalog.
type PriceRange struct {
	Min float64
	Max float64
}

// Facets summarize the active catalog independently of the applied
// filter, so a UI can render full selectable ranges next to any page.
type Facets struct {
	PriceRange    *PriceRange // nil when the catalog has no active listings
	PropertyTypes []string
}

// AppliedFilters echoes the normalized filter set a page was built from.
type AppliedFilters struct {
	Query        string
	Location     string
	MinPrice     *float64
	MaxPrice     *float64
	Bedrooms     string // "" when unset, "2" exact, "2+" at-least
	Bathrooms    string
	PropertyType string
	Amenities    []string
	SortBy       string
	SortOrder    string
	Page         int
	Limit        int
}

// SearchPage is one page of search results.
type SearchPage struct {
	Listings []Listing
	Page     int
	PageSize int
	Count    int
	HasMore  bool
	Facets   Facets
	Applied  AppliedFilters
}

// Place is a point-of-interest candidate around an origin.
type Place struct {
	ID         string
	Name       string
	Lat        float64
	Lng        float64
	Categories []string
	Rating     *float64
	OpenNow    *bool
}

// RankedPlace is a Place with its great-circle distance attached,
// rounded to two decimals.
type RankedPlace struct {
	Place
	DistanceKm float64
}

// RankOptions filter and bound a proximity ranking. Zero values mean
// "no constraint".
type RankOptions struct {
	RadiusKm  float64
	MinRating *float64
	Limit     int
}
