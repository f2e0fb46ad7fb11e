package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockCatalogPinger struct {
	err error
}

func (m *mockCatalogPinger) Ping(_ context.Context) error { return m.err }

type mockPlacesChecker struct {
	err error
}

func (m *mockPlacesChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockCatalogPinger{}, &mockPlacesChecker{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
	if r.Checks["places"] != CheckOK {
		t.Errorf("expected places %q, got %q", CheckOK, r.Checks["places"])
	}
}

func TestCheck_CatalogError(t *testing.T) {
	svc := New(&mockCatalogPinger{err: errors.New("conn refused")}, &mockPlacesChecker{})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Errorf("expected catalog %q, got %q", CheckError, r.Checks["catalog"])
	}
	if r.Checks["places"] != CheckOK {
		t.Errorf("expected places %q, got %q", CheckOK, r.Checks["places"])
	}
}

func TestCheck_PlacesError(t *testing.T) {
	svc := New(&mockCatalogPinger{}, &mockPlacesChecker{err: errors.New("timeout")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckOK {
		t.Errorf("expected catalog %q, got %q", CheckOK, r.Checks["catalog"])
	}
	if r.Checks["places"] != CheckError {
		t.Errorf("expected places %q, got %q", CheckError, r.Checks["places"])
	}
}

func TestCheck_NoPlaces(t *testing.T) {
	svc := New(&mockCatalogPinger{}, nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["places"]; ok {
		t.Error("places check should be absent when places is nil")
	}
}

func TestCheck_NoPlaces_CatalogError(t *testing.T) {
	svc := New(&mockCatalogPinger{err: errors.New("fail")}, nil)
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["catalog"] != CheckError {
		t.Error("expected catalog error")
	}
}
