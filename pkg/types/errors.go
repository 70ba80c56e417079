package types

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when a job reaches the canceled terminal status.
// It is deliberately distinct from *ModelError so callers can tell an
// operator-initiated cancellation apart from a genuine model failure.
var ErrCanceled = errors.New("prediction was canceled")

// APIError is the error envelope returned by the Infera API for non-2xx
// responses that carry a structured body.
type APIError struct {
	// Status is the HTTP status code
	Status int `json:"status,omitempty"`
	// Type is a URI identifying the error class
	Type string `json:"type,omitempty"`
	// Title is a short human-readable summary
	Title string `json:"title,omitempty"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.Status, e.Detail)
	}
	if e.Title != "" {
		return fmt.Sprintf("API error (status %d): %s", e.Status, e.Title)
	}
	return fmt.Sprintf("API error (status %d)", e.Status)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == 404
}

// ModelError is returned when a job reaches the failed terminal status. It
// carries the job's own error message and the terminal snapshot.
type ModelError struct {
	Prediction *Prediction
}

// Error implements the error interface
func (e *ModelError) Error() string {
	if e.Prediction != nil && e.Prediction.Error != "" {
		return "prediction failed: " + e.Prediction.Error
	}
	return "prediction failed"
}

// RefError is returned for malformed model reference strings. It is raised
// before any network call.
type RefError struct {
	Ref    string
	Reason string
}

// Error implements the error interface
func (e *RefError) Error() string {
	return fmt.Sprintf("invalid model reference %q: %s", e.Ref, e.Reason)
}
