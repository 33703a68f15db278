package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// Validation errors
	ErrValidation     = errors.New("validation failed")
	ErrMissingField   = errors.New("required field is missing")
	ErrFileTooLarge   = errors.New("file too large")
	ErrTooManyFiles   = errors.New("too many files")
	ErrInvalidRequest = errors.New("invalid request")

	// Ingestion errors
	ErrIO = errors.New("failed to read or process the uploaded file")

	// Store errors
	ErrNoFileIngested = errors.New("no file has been ingested")
)

// GatewayError represents a failed call to the generative model.
// StatusCode is zero when the call never produced an HTTP response.
type GatewayError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("model gateway failed with status %d", e.StatusCode)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
