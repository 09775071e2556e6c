// internal/pkg/apierror/apierror.go
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrAuthRequired marks an operation that needs an authenticated
// session. It is raised locally, before any network call.
var ErrAuthRequired = errors.New("authentication required")

// Error represents a non-2xx response from the backend API.
// Detail carries the backend's human-readable message when the
// response body provided one.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// IsStatus reports whether err is an API error with the given status code
func IsStatus(err error, statusCode int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// IsNotFound reports whether err is a 404 API error
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 API error
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Message returns the backend's detail message when err carries one,
// and fallback otherwise. Transport failures never expose internals
// to the user.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
