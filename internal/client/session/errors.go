package session

import "errors"

var (
	// ErrNoSession is returned when an operation needs a signed-in user.
	ErrNoSession = errors.New("no active session")

	// ErrMalformedPersistedToken marks a stored token that does not look
	// like a JWT. It is treated as absence and never shown to the user.
	ErrMalformedPersistedToken = errors.New("malformed persisted token")

	// ErrPersistedTokenExpired marks a stored token whose exp claim passed.
	ErrPersistedTokenExpired = errors.New("persisted token expired")

	// ErrInvalidated is returned by Loaded when the value was invalidated
	// while the fetch was in flight.
	ErrInvalidated = errors.New("value invalidated while loading")
)
