package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when no usable session token exists,
	// either because none is held or because the server rejected it.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when the service reports no such task.
	ErrNotFound = errors.New("task not found")
)

// ValidationError is a client-detected input error. It never reaches the
// network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransportError wraps a network-level failure: unreachable host, timeout,
// cancelled request.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response that is not an auth or not-found
// condition. Message carries the service's JSON message payload when
// present.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status)
}
