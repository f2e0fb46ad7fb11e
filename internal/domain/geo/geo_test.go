package geo

import "testing"

func almost(a, b, eps float64) bool {
	if a > b {
		return a-b < eps
	}
	return b-a < eps
}

func TestHaversineKm_SamePoint(t *testing.T) {
	berlin := Coordinate{Lat: 52.5200, Lng: 13.4050}
	d := HaversineKm(berlin, berlin)
	if d != 0 {
		t.Fatalf("want 0, got %f", d)
	}
}

func TestHaversineKm_Berlin_Munich(t *testing.T) {
	berlin := Coordinate{Lat: 52.5200, Lng: 13.4050}
	munich := Coordinate{Lat: 48.1351, Lng: 11.5820}
	d := HaversineKm(berlin, munich)
	// Known distance is roughly 504 km.
	if !almost(d, 504, 5) {
		t.Fatalf("want ~504 km, got %f", d)
	}
}

func TestHaversineKm_Antipodal(t *testing.T) {
	d := HaversineKm(Coordinate{Lat: 0, Lng: 0}, Coordinate{Lat: 0, Lng: 180})
	// Half the Earth's circumference at the chosen radius.
	if !almost(d, 20015, 5) {
		t.Fatalf("want ~20015 km, got %f", d)
	}
}

func TestRoundKm(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1.004, 1.00},
		{1.006, 1.01},
		// 1.115*100 is exactly 111.5 in float64, a true halfway case;
		// math.Round goes away from zero. (1.005*100 is not exact and
		// lands just below the tie.)
		{1.115, 1.12},
		{1.005, 1.00},
		{12.3456, 12.35},
	}
	for _, c := range cases {
		if got := RoundKm(c.in); got != c.want {
			t.Errorf("RoundKm(%f) = %f, want %f", c.in, got, c.want)
		}
	}
}

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"berlin", Coordinate{Lat: 52.52, Lng: 13.405}, true},
		{"boundaries", Coordinate{Lat: 90, Lng: -180}, true},
		{"lat too high", Coordinate{Lat: 90.1, Lng: 0}, false},
		{"lat too low", Coordinate{Lat: -91, Lng: 0}, false},
		{"lng too high", Coordinate{Lat: 0, Lng: 180.5}, false},
		{"lng too low", Coordinate{Lat: 0, Lng: -181}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.c.Valid(); got != c.want {
				t.Fatalf("Valid() = %v, want %v", got, c.want)
			}
		})
	}
}
