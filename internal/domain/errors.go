package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the backing store.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, negative animal count,
// a trip with no line items).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrPermissionDenied is returned when a write is rejected by the store's
// access policy, e.g. a row owned by a different staff account.
// Handlers should map this to HTTP 403.
var ErrPermissionDenied = errors.New("permission denied")
