package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the client.
var (
	// ErrNoToken is returned by authenticated calls made without a session token.
	ErrNoToken = errors.New("api: no session token")

	// ErrEmptyChatID is returned when GetChat is called with an empty id.
	ErrEmptyChatID = errors.New("api: empty chat id")

	// ErrUnauthorized matches StatusError values with status 401 or 403.
	ErrUnauthorized = errors.New("api: unauthorized")
)

// StatusError is returned for non-2xx responses. Message holds the
// server-supplied "message" (or "error") field when the body carried one.
type StatusError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
}

// IsClientError reports whether the status is a 4xx.
func (e *StatusError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Is lets errors.Is(err, ErrUnauthorized) match auth failures.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden)
}

// ServerMessage extracts the server-supplied message from err, if any.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
