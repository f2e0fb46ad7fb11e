package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/listing"
	"github.com/sichrplace/discovery/internal/domain/place"
	"github.com/sichrplace/discovery/internal/domain/search/page"
	"github.com/sichrplace/discovery/internal/domain/search/params"
	healthuc "github.com/sichrplace/discovery/internal/usecase/health"
	proximityuc "github.com/sichrplace/discovery/internal/usecase/proximity"
	searchuc "github.com/sichrplace/discovery/internal/usecase/search"
)

// Error codes returned to API clients.
const (
	codeBadRequest         = "badRequest"
	codeCatalogUnavailable = "catalogUnavailable"
	codeCatalogQuery       = "catalogQueryFailed"
	codePlacesUnavailable  = "placesUnavailable"
	codeInternalError      = "internalError"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the discovery API over chi.
type Server struct {
	search        *searchuc.Service
	proximity     *proximityuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	proximity *proximityuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:    search,
		proximity: proximity,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrCatalogQuery, http.StatusInternalServerError, codeCatalogQuery),
		sentinelHandler(domain.ErrPlacesUnavailable, http.StatusBadGateway, codePlacesUnavailable),
	}
	return s
}

// Routes registers all API routes on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.Health)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/listings/search", s.SearchListings)
		r.Get("/places/nearby", s.NearbyPlaces)
	})
}

// SearchListings handles GET /api/v1/listings/search.
func (s *Server) SearchListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	raw := params.Raw{
		Query:        q.Get("query"),
		Location:     q.Get("location"),
		MinPrice:     q.Get("minPrice"),
		MaxPrice:     q.Get("maxPrice"),
		Bedrooms:     q.Get("bedrooms"),
		Bathrooms:    q.Get("bathrooms"),
		PropertyType: q.Get("propertyType"),
		Amenities:    q.Get("amenities"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
		Page:         q.Get("page"),
		Limit:        q.Get("limit"),
	}

	result, err := s.search.Search(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResultResponse(result))
}

// NearbyPlaces handles GET /api/v1/places/nearby.
func (s *Server) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	latStr, lngStr := q.Get("lat"), q.Get("lng")
	if latStr == "" || lngStr == "" {
		writeError(w, http.StatusBadRequest, domain.ReasonMissingCoordinates,
			"lat and lng query parameters are required")
		return
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, domain.ReasonInvalidCoordinates,
			"lat and lng must be decimal degrees")
		return
	}

	opts, err := rankOptionsFromQuery(q.Get("radiusKm"), q.Get("minRating"), q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	ranked, err := s.proximity.Nearby(r.Context(), geo.Coordinate{Lat: lat, Lng: lng}, opts)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, nearbyResponse(ranked))
}

// Health handles GET /health.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Request parsing ---

func rankOptionsFromQuery(radiusStr, ratingStr, limitStr string) (proximityuc.RankOptions, error) {
	var opts proximityuc.RankOptions

	if radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius < 0 {
			return opts, errors.New("radiusKm must be a non-negative number")
		}
		opts.RadiusKm = &radius
	}

	if ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return opts, errors.New("minRating must be a number")
		}
		opts.MinRating = &rating
	}

	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			return opts, errors.New("limit must be a non-negative integer")
		}
		opts.Limit = limit
	}

	return opts, nil
}

// --- Response shaping ---

type listingPayload struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Price        float64  `json:"price"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	PropertyType string   `json:"propertyType,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Address      string   `json:"address,omitempty"`
	City         string   `json:"city,omitempty"`
	Region       string   `json:"region,omitempty"`
	CreatedAt    int64    `json:"createdAt"`
}

type priceRangePayload struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type facetsPayload struct {
	PriceRange    *priceRangePayload `json:"priceRange,omitempty"`
	PropertyTypes []string           `json:"propertyTypes,omitempty"`
}

type appliedPayload struct {
	Query        string   `json:"query,omitempty"`
	Location     string   `json:"location,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	Bedrooms     string   `json:"bedrooms,omitempty"`
	Bathrooms    string   `json:"bathrooms,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	SortBy       string   `json:"sortBy"`
	SortOrder    string   `json:"sortOrder"`
	Page         int      `json:"page"`
	Limit        int      `json:"limit"`
}

type searchPayload struct {
	Listings []listingPayload `json:"listings"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Count    int              `json:"count"`
	HasMore  bool             `json:"hasMore"`
	Facets   facetsPayload    `json:"facets"`
	Applied  appliedPayload   `json:"applied"`
}

func searchResultResponse(result *page.Result) searchPayload {
	listings := make([]listingPayload, 0, len(result.Listings))
	for i := range result.Listings {
		listings = append(listings, listingToPayload(&result.Listings[i]))
	}

	var facets facetsPayload
	if result.Facets.PriceRange != nil {
		facets.PriceRange = &priceRangePayload{
			Min: result.Facets.PriceRange.Min,
			Max: result.Facets.PriceRange.Max,
		}
	}
	facets.PropertyTypes = result.Facets.PropertyTypes

	return searchPayload{
		Listings: listings,
		Page:     result.Page,
		PageSize: result.PageSize,
		Count:    result.Count,
		HasMore:  result.HasMore,
		Facets:   facets,
		Applied:  appliedToPayload(&result.Applied),
	}
}

func listingToPayload(rec *listing.Record) listingPayload {
	return listingPayload{
		ID:           rec.ID(),
		Title:        rec.Title(),
		Description:  rec.Description(),
		Price:        rec.Price(),
		Bedrooms:     rec.Bedrooms(),
		Bathrooms:    rec.Bathrooms(),
		PropertyType: rec.PropertyType(),
		Amenities:    rec.Amenities(),
		Address:      rec.Address(),
		City:         rec.City(),
		Region:       rec.Region(),
		CreatedAt:    rec.CreatedAt(),
	}
}

func appliedToPayload(p *params.SearchParameters) appliedPayload {
	return appliedPayload{
		Query:        p.Query(),
		Location:     p.Location(),
		MinPrice:     p.MinPrice(),
		MaxPrice:     p.MaxPrice(),
		Bedrooms:     p.Bedrooms().String(),
		Bathrooms:    p.Bathrooms().String(),
		PropertyType: p.PropertyType(),
		Amenities:    p.Amenities(),
		SortBy:       string(p.SortField()),
		SortOrder:    string(p.Direction()),
		Page:         p.Page(),
		Limit:        p.PageSize(),
	}
}

type placePayload struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	DistanceKm float64  `json:"distanceKm"`
	Categories []string `json:"categories,omitempty"`
	Rating     *float64 `json:"rating,omitempty"`
	OpenNow    *bool    `json:"openNow,omitempty"`
}

type nearbyPayload struct {
	Places []placePayload `json:"places"`
	Count  int            `json:"count"`
}

func nearbyResponse(ranked []place.Ranked) nearbyPayload {
	places := make([]placePayload, 0, len(ranked))
	for _, p := range ranked {
		places = append(places, placePayload{
			ID:         p.ID,
			Name:       p.Name,
			Lat:        p.Location.Lat,
			Lng:        p.Location.Lng,
			DistanceKm: p.DistanceKm,
			Categories: p.Categories,
			Rating:     p.Rating,
			OpenNow:    p.OpenNow,
		})
	}
	return nearbyPayload{Places: places, Count: len(places)}
}

// --- Error handling ---

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrValidation,
		domain.ErrNotFound,
		domain.ErrCatalogUnavailable,
		domain.ErrCatalogQuery,
		domain.ErrPlacesUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// validationHandler maps validation failures to 400 with the reason as the code.
func validationHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, domain.ValidationReason(err), safeDomainMessage(err))
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, safeDomainMessage(err))
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
