package highlights

import (
	"errors"
	"net/http"
)

// Domain errors for highlight operations.
var (
	ErrNotFound = errors.New("highlight not found")

	// ErrPDFNotFound covers both a missing parent document and one owned by
	// another user; the two are deliberately indistinguishable.
	ErrPDFNotFound = errors.New("PDF not found or access denied")

	ErrValidation = errors.New("validation failed")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPDFNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
