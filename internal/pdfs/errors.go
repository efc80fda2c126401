package pdfs

import (
	"errors"
	"net/http"
)

// Domain errors for document operations.
var (
	ErrNotFound     = errors.New("PDF not found")
	ErrFileMissing  = errors.New("PDF file not found on server")
	ErrDuplicate    = errors.New("document already exists")
	ErrNoFile       = errors.New("no PDF file uploaded")
	ErrNotPDF       = errors.New("only PDF files are allowed")
	ErrFileTooLarge = errors.New("file exceeds maximum upload size")
	ErrEmptyName    = errors.New("PDF name is required")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
// A missing binary collapses into the same 404 as a missing record so the
// response never reveals which half of the lookup failed.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFileMissing):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrNoFile), errors.Is(err, ErrNotPDF),
		errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrEmptyName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
