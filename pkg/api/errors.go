package api

import (
	"errors"
	"fmt"
)

type ErrorType int

const (
	ErrorTypeNetwork ErrorType = iota
	ErrorTypeHTTP
	ErrorTypeValidation
	ErrorTypeTimeout
)

// ErrEmptyID is returned when a required identifier is missing.
var ErrEmptyID = errors.New("empty identifier")

type APIError struct {
	Type      ErrorType
	Operation string
	URL       string
	Status    int
	Err       error
}

func (e *APIError) Error() string {
	switch e.Type {
	case ErrorTypeHTTP:
		return fmt.Sprintf("HTTP error during %s for %s: status %d: %v",
			e.Operation, e.URL, e.Status, e.Err)
	case ErrorTypeNetwork:
		return fmt.Sprintf("network error during %s for %s: %v",
			e.Operation, e.URL, e.Err)
	case ErrorTypeTimeout:
		return fmt.Sprintf("timeout during %s for %s: %v",
			e.Operation, e.URL, e.Err)
	case ErrorTypeValidation:
		return fmt.Sprintf("invalid request for %s: %v", e.Operation, e.Err)
	default:
		return fmt.Sprintf("error during %s for %s: %v",
			e.Operation, e.URL, e.Err)
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newNetworkError(op, url string, err error) *APIError {
	t := ErrorTypeNetwork
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		t = ErrorTypeTimeout
	}

	return &APIError{Type: t, Operation: op, URL: url, Err: err}
}

func newStatusError(op, url string, status int, err error) *APIError {
	return &APIError{Type: ErrorTypeHTTP, Operation: op, URL: url, Status: status, Err: err}
}

func newValidationError(op string, err error) *APIError {
	return &APIError{Type: ErrorTypeValidation, Operation: op, Err: err}
}
