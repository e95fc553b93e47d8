package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned before any network activity when no
	// token is held.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrAuthExpired is wrapped by the RemoteError of a 401 response.
	ErrAuthExpired = errors.New("session expired")
	ErrRemote      = errors.New("remote error")
	ErrUnavailable = errors.New("server unavailable")
)

// RemoteError is a non-2xx response from the backend.
type RemoteError struct {
	StatusCode int
	Message    string
	err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.err, e.StatusCode, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.err
}

// StatusCode returns the HTTP status of err if it is a RemoteError, or 0.
func StatusCode(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.StatusCode
	}
	return 0
}
