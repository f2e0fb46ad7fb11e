package params

import (
	"strconv"
	"strings"

	"github.com/sichrplace/discovery/internal/domain"
)

// Pagination limits. The page size cap is a hard invariant protecting the
// catalog from unbounded scans.
const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

// SortField enumerates the sortable listing fields.
type SortField string

// Allowed sort fields. Anything else falls back to SortCreationTime.
const (
	SortCreationTime SortField = "creationTime"
	SortPrice        SortField = "price"
	SortBedrooms     SortField = "bedrooms"
	SortBathrooms    SortField = "bathrooms"
	SortTitle        SortField = "title"
)

// Direction is the sort direction.
type Direction string

// Sort directions. Anything else falls back to Descending.
const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// orMoreSuffix marks an "N-or-more" room count, e.g. "3+".
const orMoreSuffix = "+"

// Raw is the flat key/value parameter bag as received at the request
// boundary, mapped 1:1 onto the inbound parameter names.
type Raw struct {
	Query        string
	Location     string
	MinPrice     string
	MaxPrice     string
	Bedrooms     string
	Bathrooms    string
	PropertyType string
	Amenities    string // comma-joined list
	SortBy       string
	SortOrder    string
	Page         string
	Limit        string
}

// Count is an optional room-count filter: either an exact non-negative
// value or an "N-or-more" lower bound.
type Count struct {
	n      int
	orMore bool
	set    bool
}

// ExactCount creates an exact room-count filter.
func ExactCount(n int) Count { return Count{n: n, set: true} }

// AtLeastCount creates an "N-or-more" room-count filter.
func AtLeastCount(n int) Count { return Count{n: n, orMore: true, set: true} }

// IsSet reports whether the filter was supplied.
func (c Count) IsSet() bool { return c.set }

// N returns the count value.
func (c Count) N() int { return c.n }

// OrMore reports whether the filter means "N or more" rather than exactly N.
func (c Count) OrMore() bool { return c.orMore }

// String renders the count in its inbound token form ("3" or "3+").
func (c Count) String() string {
	if !c.set {
		return ""
	}
	s := strconv.Itoa(c.n)
	if c.orMore {
		s += orMoreSuffix
	}
	return s
}

// SearchParameters is a normalized, validated search input (immutable value
// object). Free-text fields keep their original casing for echoing back to
// the caller; folded forms are used for matching.
type SearchParameters struct {
	query        string
	queryFold    string
	location     string
	locationFold string
	minPrice     *float64
	maxPrice     *float64
	bedrooms     Count
	bathrooms    Count
	propertyType string
	amenities    []string
	sortField    SortField
	direction    Direction
	page         int
	pageSize     int
}

// Normalize validates and normalizes a raw parameter bag.
//
// Hard failures (price range inverted, malformed counts or prices) return a
// domain.ValidationError. Unknown sort fields/directions and out-of-range
// page values degrade to defaults instead of failing, so stale client state
// never breaks search.
func Normalize(raw Raw) (SearchParameters, error) {
	p := SearchParameters{
		query:        strings.TrimSpace(raw.Query),
		location:     strings.TrimSpace(raw.Location),
		propertyType: strings.TrimSpace(raw.PropertyType),
		amenities:    splitAmenities(raw.Amenities),
		sortField:    normalizeSortField(raw.SortBy),
		direction:    normalizeDirection(raw.SortOrder),
		page:         parsePage(raw.Page),
		pageSize:     parsePageSize(raw.Limit),
	}
	p.queryFold = strings.ToLower(p.query)
	p.locationFold = strings.ToLower(p.location)

	var err error
	if p.minPrice, err = parsePrice(raw.MinPrice, "minPrice"); err != nil {
		return SearchParameters{}, err
	}
	if p.maxPrice, err = parsePrice(raw.MaxPrice, "maxPrice"); err != nil {
		return SearchParameters{}, err
	}
	if p.minPrice != nil && p.maxPrice != nil && *p.minPrice > *p.maxPrice {
		return SearchParameters{}, domain.NewValidation(domain.ReasonPriceRangeInverted, "minPrice")
	}

	if p.bedrooms, err = parseCount(raw.Bedrooms, "bedrooms"); err != nil {
		return SearchParameters{}, err
	}
	if p.bathrooms, err = parseCount(raw.Bathrooms, "bathrooms"); err != nil {
		return SearchParameters{}, err
	}

	return p, nil
}

// Query returns the free-text query with original casing.
func (p *SearchParameters) Query() string { return p.query }

// QueryFold returns the lowercased free-text query used for matching.
func (p *SearchParameters) QueryFold() string { return p.queryFold }

// Location returns the location text with original casing.
func (p *SearchParameters) Location() string { return p.location }

// LocationFold returns the lowercased location text used for matching.
func (p *SearchParameters) LocationFold() string { return p.locationFold }

// MinPrice returns the lower price bound (nil when absent).
func (p *SearchParameters) MinPrice() *float64 { return p.minPrice }

// MaxPrice returns the upper price bound (nil when absent).
func (p *SearchParameters) MaxPrice() *float64 { return p.maxPrice }

// Bedrooms returns the bedroom-count filter.
func (p *SearchParameters) Bedrooms() Count { return p.bedrooms }

// Bathrooms returns the bathroom-count filter.
func (p *SearchParameters) Bathrooms() Count { return p.bathrooms }

// PropertyType returns the property type filter ("" when absent).
func (p *SearchParameters) PropertyType() string { return p.propertyType }

// Amenities returns the requested amenity set (AND semantics).
func (p *SearchParameters) Amenities() []string { return p.amenities }

// SortField returns the applied sort field.
func (p *SearchParameters) SortField() SortField { return p.sortField }

// Direction returns the applied sort direction.
func (p *SearchParameters) Direction() Direction { return p.direction }

// Page returns the 1-based page number.
func (p *SearchParameters) Page() int { return p.page }

// PageSize returns the applied page size, always within [1, MaxPageSize].
func (p *SearchParameters) PageSize() int { return p.pageSize }

func splitAmenities(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if a := strings.TrimSpace(part); a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeSortField(s string) SortField {
	switch SortField(strings.TrimSpace(s)) {
	case SortPrice:
		return SortPrice
	case SortBedrooms:
		return SortBedrooms
	case SortBathrooms:
		return SortBathrooms
	case SortTitle:
		return SortTitle
	default:
		return SortCreationTime
	}
}

func normalizeDirection(s string) Direction {
	if Direction(strings.TrimSpace(s)) == Ascending {
		return Ascending
	}
	return Descending
}

func parsePage(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func parsePageSize(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultPageSize
	}
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func parsePrice(s, field string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil, domain.NewValidation(domain.ReasonInvalidPrice, field)
	}
	return &v, nil
}

func parseCount(s, field string) (Count, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Count{}, nil
	}
	orMore := strings.HasSuffix(s, orMoreSuffix)
	if orMore {
		s = strings.TrimSuffix(s, orMoreSuffix)
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Count{}, domain.NewValidation(domain.ReasonInvalidCount, field)
	}
	if orMore {
		return AtLeastCount(n), nil
	}
	return ExactCount(n), nil
}
