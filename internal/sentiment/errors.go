package sentiment

import (
	"errors"
	"fmt"
)

var (
	// ErrNoBaseURL is returned by every call on a client built without a base URL.
	ErrNoBaseURL = errors.New("sentiment service URL is not configured")
	// ErrMalformedResponse marks a 2xx response that does not follow the contract.
	ErrMalformedResponse = errors.New("malformed response")
)

// StatusError reports a non-2xx response. Detail holds the human-readable
// message extracted from the error payload, if any.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api %s returned status %d", e.Endpoint, e.StatusCode)
}

// NetworkError reports a request that never produced a response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnreachable reports whether err means no response was received from the
// service, including the unconfigured case.
func IsUnreachable(err error) bool {
	if errors.Is(err, ErrNoBaseURL) {
		return true
	}
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
