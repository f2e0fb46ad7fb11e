package proximity

import (
	"sort"

	"github.com/sichrplace/discovery/internal/domain"
	"github.com/sichrplace/discovery/internal/domain/geo"
	"github.com/sichrplace/discovery/internal/domain/place"
)

// RankOptions narrow and cap the ranked output. Nil pointers mean the
// filter is not applied.
type RankOptions struct {
	RadiusKm  *float64
	MinRating *float64
	Limit     int
}

// Rank orders candidates by great-circle distance from the origin,
// nearest first, with the candidate id as tie-break.
//
// The radius filter compares against the true distance; the reported
// DistanceKm is rounded to two decimals afterwards, so a candidate just
// past the radius is excluded even when its rounded distance would
// equal the cutoff. A minimum rating excludes unrated candidates.
func Rank(origin geo.Coordinate, candidates []place.Candidate, opts RankOptions) ([]place.Ranked, error) {
	if !origin.Valid() {
		return nil, domain.NewValidation(domain.ReasonInvalidCoordinates, "origin")
	}

	ranked := make([]place.Ranked, 0, len(candidates))
	for _, c := range candidates {
		if !c.Location.Valid() {
			continue
		}

		d := geo.HaversineKm(origin, c.Location)
		if opts.RadiusKm != nil && d > *opts.RadiusKm {
			continue
		}
		if opts.MinRating != nil && (c.Rating == nil || *c.Rating < *opts.MinRating) {
			continue
		}

		ranked = append(ranked, place.Ranked{
			Candidate:  c,
			DistanceKm: geo.RoundKm(d),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].DistanceKm != ranked[j].DistanceKm {
			return ranked[i].DistanceKm < ranked[j].DistanceKm
		}
		return ranked[i].ID < ranked[j].ID
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	return ranked, nil
}
