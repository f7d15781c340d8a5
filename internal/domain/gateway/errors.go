// Package gateway holds the error taxonomy shared by every call to the
// upstream HR API.
package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork covers transport failures, timeouts and upstream 5xx answers.
	ErrNetwork = errors.New("upstream service unavailable")

	// ErrUnauthorized is returned when the upstream rejects the session token.
	ErrUnauthorized = errors.New("upstream rejected credentials")

	ErrNotFound = errors.New("upstream resource not found")

	// ErrBadResponse is a 2xx answer missing what the caller needs. It is
	// reported through NetworkError.
	ErrBadResponse = errors.New("upstream returned an unexpected response")
)

// RemoteError is a rejection reported by the upstream (e.g. submitting an
// already approved day). Message is surfaced verbatim.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("upstream rejected request (%d): %s", e.StatusCode, e.Message)
}

// NetworkError wraps the underlying transport cause while still matching ErrNetwork.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }
