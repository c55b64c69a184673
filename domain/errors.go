// Package domain holds the error taxonomy shared by every storefront
// aggregate. Subpackages wrap these sentinels with fmt.Errorf("%w") so the
// HTTP layer can map them to status codes with errors.Is.
package domain

import "errors"

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks an unknown identifier.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a duplicate of a unique field.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized marks bad credentials or a missing/invalid token.
	ErrUnauthorized = errors.New("unauthorized")
)
