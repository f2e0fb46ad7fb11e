package discovery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sichrplace/discovery/internal/domain/geo"
)

func TestNew_NoAddress(t *testing.T) {
	_, err := New()
	if err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithRedis("localhost:6379", "secret").apply(cfg)
	if cfg.addrs[0] != "localhost:6379" {
		t.Errorf("addr = %q, want localhost:6379", cfg.addrs[0])
	}
	if cfg.password != "secret" {
		t.Errorf("password = %q, want secret", cfg.password)
	}

	WithUsername("svc").apply(cfg)
	if cfg.username != "svc" {
		t.Errorf("username = %q, want svc", cfg.username)
	}

	WithDB(2).apply(cfg)
	if cfg.db != 2 {
		t.Errorf("db = %d, want 2", cfg.db)
	}

	cfg2 := &clientConfig{}
	WithPlaces("http://places.local").apply(cfg2)
	if cfg2.placesBaseURL != "http://places.local" {
		t.Errorf("placesBaseURL = %q, want http://places.local", cfg2.placesBaseURL)
	}

	WithPlacesTimeout(3 * time.Second).apply(cfg2)
	if cfg2.placesTimeout != 3*time.Second {
		t.Errorf("placesTimeout = %v, want 3s", cfg2.placesTimeout)
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestUnavailablePlaces(t *testing.T) {
	_, err := unavailablePlaces{}.Nearby(context.Background(), geo.Coordinate{Lat: 52.52, Lng: 13.405}, 5)
	if !errors.Is(err, ErrPlacesUnavailable) {
		t.Fatalf("err = %v, want ErrPlacesUnavailable", err)
	}
}

func TestRankPlaces(t *testing.T) {
	places := []Place{
		{ID: "far", Name: "Far cafe", Lat: 52.62, Lng: 13.405},
		{ID: "near", Name: "Near cafe", Lat: 52.521, Lng: 13.405},
	}

	ranked, err := RankPlaces(52.52, 13.405, places, RankOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
	if ranked[0].ID != "near" || ranked[1].ID != "far" {
		t.Errorf("order = [%s %s], want [near far]", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].DistanceKm <= 0 || ranked[0].DistanceKm > 1 {
		t.Errorf("DistanceKm = %v, want in (0, 1]", ranked[0].DistanceKm)
	}
}

func TestRankPlaces_InvalidOrigin(t *testing.T) {
	_, err := RankPlaces(120, 13.405, nil, RankOptions{})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestRankPlaces_Radius(t *testing.T) {
	places := []Place{
		{ID: "inside", Lat: 52.521, Lng: 13.405},
		{ID: "outside", Lat: 52.62, Lng: 13.405},
	}

	ranked, err := RankPlaces(52.52, 13.405, places, RankOptions{RadiusKm: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 1 || ranked[0].ID != "inside" {
		t.Fatalf("ranked = %+v, want only inside", ranked)
	}
}

func TestRankPlaces_Limit(t *testing.T) {
	places := []Place{
		{ID: "a", Lat: 52.521, Lng: 13.405},
		{ID: "b", Lat: 52.522, Lng: 13.405},
		{ID: "c", Lat: 52.523, Lng: 13.405},
	}

	ranked, err := RankPlaces(52.52, 13.405, places, RankOptions{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2", len(ranked))
	}
}

func TestContextWithActor(t *testing.T) {
	ctx := ContextWithActor(context.Background(), "alice")
	if ctx == context.Background() {
		t.Fatal("expected derived context")
	}
}
