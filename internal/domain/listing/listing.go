package listing

// Status values for a listing lifecycle. Only active listings are ever
// eligible for discovery.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDraft    = "draft"
)

// Record is a single rental listing as owned by the catalog (immutable
// value object).
type Record struct {
	id           string
	title        string
	description  string
	price        float64
	bedrooms     int
	bathrooms    int
	propertyType string
	amenities    []string
	address      string
	city         string
	region       string
	status       string
	createdAt    int64 // unix milliseconds
}

// Reconstruct hydrates a Record from catalog storage without validation.
func Reconstruct(
	id, title, description string,
	price float64, bedrooms, bathrooms int,
	propertyType string, amenities []string,
	address, city, region, status string,
	createdAt int64,
) Record {
	return Record{
		id:           id,
		title:        title,
		description:  description,
		price:        price,
		bedrooms:     bedrooms,
		bathrooms:    bathrooms,
		propertyType: propertyType,
		amenities:    amenities,
		address:      address,
		city:         city,
		region:       region,
		status:       status,
		createdAt:    createdAt,
	}
}

// ID returns the listing identifier.
func (r *Record) ID() string { return r.id }

// Title returns the listing title.
func (r *Record) Title() string { return r.title }

// Description returns the listing description.
func (r *Record) Description() string { return r.description }

// Price returns the monthly price.
func (r *Record) Price() float64 { return r.price }

// Bedrooms returns the bedroom count.
func (r *Record) Bedrooms() int { return r.bedrooms }

// Bathrooms returns the bathroom count.
func (r *Record) Bathrooms() int { return r.bathrooms }

// PropertyType returns the property type label.
func (r *Record) PropertyType() string { return r.propertyType }

// Amenities returns the amenity set.
func (r *Record) Amenities() []string { return r.amenities }

// Address returns the street address.
func (r *Record) Address() string { return r.address }

// City returns the city.
func (r *Record) City() string { return r.city }

// Region returns the region or state.
func (r *Record) Region() string { return r.region }

// Status returns the lifecycle status.
func (r *Record) Status() string { return r.status }

// CreatedAt returns the creation timestamp in unix milliseconds.
func (r *Record) CreatedAt() int64 { return r.createdAt }
