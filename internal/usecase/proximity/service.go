package proximity

import (
	"context"
	"fmt"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
	"github.com/sichrplace/discovery/internal/metrics"
)

// defaultRadiusKm bounds the provider fetch when no radius is requested.
const defaultRadiusKm = 5.0

// Service ranks places around a point of interest.
type Service struct {
	places Places
}

// New creates a proximity service.
func New(places Places) *Service {
	return &Service{places: places}
}

// Nearby fetches candidates around the origin from the places provider
// and ranks them by distance.
func (s *Service) Nearby(ctx context.Context, origin geo.Coordinate, opts RankOptions) ([]place.Ranked, error) {
	if !origin.Valid() {
		metrics.ProximityLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewValidation(domain.ReasonInvalidCoordinates, "origin")
	}

	fetchRadius := defaultRadiusKm
	if opts.RadiusKm != nil {
		fetchRadius = *opts.RadiusKm
	}

	candidates, err := s.places.Nearby(ctx, origin, fetchRadius)
	if err != nil {
		metrics.ProximityLookupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("fetch nearby places: %w", err)
	}

	ranked, err := Rank(origin, candidates, opts)
	if err != nil {
		metrics.ProximityLookupsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	metrics.ProximityLookupsTotal.WithLabelValues("ok").Inc()
	return ranked, nil
}
