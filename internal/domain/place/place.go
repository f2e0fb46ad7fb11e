package place

import "github.com/sichrplace/discovery/internal/domain/geo"

// Candidate is a point of interest returned by the places collaborator.
type Candidate struct {
	ID         string
	Name       string
	Location   geo.Coordinate
	Categories []string
	Rating     *float64
	OpenNow    *bool
}

// Ranked is a Candidate with its computed great-circle distance attached.
// Ranking never mutates the input candidate; it produces a new record.
type Ranked struct {
	Candidate
	DistanceKm float64
}
