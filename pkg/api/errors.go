package api

import (
	"fmt"
	"net/http"

	"github.com/vuet/vuet-client/pkg/apperrors"
)

// Error is a non-2xx response from the API.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string // sanitized and truncated
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap maps well-known statuses to apperrors sentinels so callers can use
// errors.Is.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	}
	return nil
}

// IsRetryable reports whether the request may succeed if repeated.
func (e *Error) IsRetryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// HTTPStatus returns the response status code.
func (e *Error) HTTPStatus() int { return e.StatusCode }
