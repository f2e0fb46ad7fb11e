package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for Haversine distance.
const EarthRadiusKm = 6371.0

// Coordinate is a latitude/longitude pair in signed degrees.
type Coordinate struct {
	Lat float64
	Lng float64
}

// Valid reports whether latitude is in [-90,90] and longitude in [-180,180].
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// HaversineKm returns the great-circle distance in kilometers between two
// coordinates.
func HaversineKm(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RoundKm rounds a distance to the stable 2-decimal precision reported to
// callers. Sorting and tie-breaking operate on this rounded value so that
// outputs stay deterministic.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
