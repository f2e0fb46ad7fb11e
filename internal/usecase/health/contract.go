package health

import "context"

// CatalogPinger checks catalog store availability.
type CatalogPinger interface {
	Ping(ctx context.Context) error
}

// PlacesChecker checks places provider availability.
type PlacesChecker interface {
	HealthCheck(ctx context.Context) error
}
