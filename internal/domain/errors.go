package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrCatalogUnavailable signals that the catalog store or its listing
	// index is missing or misconfigured.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrCatalogQuery signals a failed catalog query. Never retried at this
	// layer; retry policy belongs to the catalog backend.
	ErrCatalogQuery = errors.New("catalog query failed")
	// ErrPlacesUnavailable signals that the places collaborator could not be
	// reached or answered with a failure.
	ErrPlacesUnavailable = errors.New("places service unavailable")
)

// Machine-readable validation reason codes surfaced to clients.
const (
	ReasonPriceRangeInverted = "priceRangeInverted"
	ReasonInvalidCount       = "invalidCount"
	ReasonInvalidPrice       = "invalidPrice"
	ReasonInvalidCoordinates = "coordinatesOutOfRange"
	ReasonMissingCoordinates = "coordinatesRequired"
)

// ValidationError wraps ErrValidation with a machine-readable reason code.
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", ErrValidation.Error(), e.Reason, e.Field)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error with a reason code.
func NewValidation(reason, field string) error {
	return &ValidationError{Reason: reason, Field: field}
}

// ValidationReason extracts the reason code from a validation error,
// falling back to "invalidRequest" for untyped validation failures.
func ValidationReason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return "invalidRequest"
}
