package client

import (
	"context"
	"net/http"
	"net/url"
)

// Client performs JSON requests against the backend. body is encoded as the
// request payload when non-nil; a 2xx response body is decoded into out when
// out is non-nil.
type Client interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error
	DoAnonymous(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error
}

// Credentials supplies the bearer token and is told when the backend
// rejects it. Expire must only clear the session if token is still current.
type Credentials interface {
	Token() (string, bool)
	Expire(ctx context.Context, token string) bool
}

type requestOptions struct {
	header http.Header
}

type RequestOption func(*requestOptions)

// WithHeader adds an extra request header. Authorization cannot be set
// this way.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if http.CanonicalHeaderKey(key) == headerAuthorization {
			return
		}
		o.header.Add(key, value)
	}
}
