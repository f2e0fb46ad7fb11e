package discovery

import "github.com/sichrplace/discovery/internal/domain"

// Sentinel errors surfaced by the SDK. Match with errors.Is.
var (
	// ErrValidation signals malformed caller input.
	ErrValidation = domain.ErrValidation
	// ErrCatalogUnavailable signals that the catalog store or its listing
	// index is missing or misconfigured.
	ErrCatalogUnavailable = domain.ErrCatalogUnavailable
	// ErrCatalogQuery signals a failed catalog query.
	ErrCatalogQuery = domain.ErrCatalogQuery
	// ErrPlacesUnavailable signals that no places provider is configured
	// or the configured one could not be reached.
	ErrPlacesUnavailable = domain.ErrPlacesUnavailable
)
