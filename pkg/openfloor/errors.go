package openfloor

import (
	"errors"
	"fmt"
)

// Sentinel errors for caller-side classification with errors.Is.
var (
	// ErrInvalidArgument indicates a structurally invalid request, such as
	// an envelope with no events or an empty outbound utterance.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrProtocolMismatch indicates the peer returned parseable JSON that
	// is not an Open Floor payload (no top-level "openFloor" key). This is
	// distinct from a conformant response that simply carries no result.
	ErrProtocolMismatch = errors.New("response is not an Open Floor payload")
)

// NetworkError is a transport-level failure: connection refused, timeout,
// or a non-2xx status. StatusCode is zero when no response was received.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network error calling %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("network error calling %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// MalformedResponseError indicates a 2xx response whose body is not valid JSON.
type MalformedResponseError struct {
	URL string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.URL, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
