package proximity

import (
	"context"

	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
)

// Places defines the upstream provider contract for nearby candidates.
type Places interface {
	Nearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]place.Candidate, error)
}
