// Copyright 2026 The Go JMAP Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"errors"
	"fmt"
)

var (
	// ErrStreamEnded is returned by [EventStream.Next] once the server has
	// ended the event stream. Resume with a new stream from the last event id.
	ErrStreamEnded = errors.New("event stream ended")

	// ErrStreamClosed is returned when reading from a closed stream.
	ErrStreamClosed = errors.New("event stream is closed")
)

// StatusError reports an HTTP response with a non-2xx status.
type StatusError struct {
	Op         string
	URL        string
	StatusCode int
	// Body holds the start of the response body.
	Body string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Op, e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Op, e.URL, e.StatusCode)
}

// ConnectionError represents a connection-related error.
type ConnectionError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s to %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SessionError reports that the session resource could not be resolved or
// lacks what the client needs from it.
type SessionError struct {
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	return fmt.Sprintf("resolve session: %s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}
