package models

import "errors"

var (
	// ErrNotFound is returned when a product id does not exist in the
	// backing catalog or in the loaded list.
	ErrNotFound = errors.New("product not found")

	// ErrNoMorePages is returned by an incremental load once the catalog
	// reported its final page.
	ErrNoMorePages = errors.New("no more pages")

	// ErrOperationInFlight is returned when a mutating catalog operation is
	// requested while another one is still outstanding. Surfaces are
	// expected to disable the triggering control instead of hitting this.
	ErrOperationInFlight = errors.New("another catalog operation is in progress")

	// ErrInvalidInput wraps field-level validation failures raised before
	// any network call is made.
	ErrInvalidInput = errors.New("invalid product input")
)
