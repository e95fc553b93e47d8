package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/dmitrijs2005/bizdesk/internal/client/metrics"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"

	defaultTimeout  = 30 * time.Second
	maxResponseSize = 8 << 20
)

type Config struct {
	BaseURL string
	// Timeout bounds a single request. Zero selects 30s.
	Timeout time.Duration
	// RequestsPerSecond caps the outgoing request rate. Zero disables the cap.
	RequestsPerSecond float64

	HTTPClient *http.Client
	Metrics    *metrics.Collector
	Logger     logging.Logger
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   Credentials
	limiter *rate.Limiter
	metrics *metrics.Collector
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg Config, creds Credentials) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.NewCollector()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    hc,
		creds:   creds,
		limiter: limiter,
		metrics: m,
		log:     log.With("component", "transport"),
	}, nil
}

// Do sends an authenticated request. Without a token it fails with
// ErrUnauthenticated and nothing is sent. A 401 expires the token the
// request was sent with.
func (c *HTTPClient) Do(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error {
	token, ok := c.creds.Token()
	if !ok {
		return ErrUnauthenticated
	}
	return c.do(ctx, method, path, query, body, out, token, opts)
}

// DoAnonymous sends a request without credentials.
func (c *HTTPClient) DoAnonymous(ctx context.Context, method, path string, query url.Values, body, out any, opts ...RequestOption) error {
	return c.do(ctx, method, path, query, body, out, "", opts)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any, token string, opts []RequestOption) error {
	req, requestID, err := c.newRequest(ctx, method, path, query, body, token, opts)
	if err != nil {
		return err
	}
	log := c.log.With("method", method, "path", path, "request_id", requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(method, metrics.StatusLabel(0), time.Since(start))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Debug(ctx, "request failed", "err", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	c.metrics.ObserveRequest(method, metrics.StatusLabel(resp.StatusCode), time.Since(start))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.remoteError(ctx, log, resp.StatusCode, data, token)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any, token string, opts []RequestOption) (*http.Request, string, error) {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}

	o := requestOptions{header: http.Header{}}
	for _, opt := range opts {
		opt(&o)
	}
	for k, vs := range o.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	requestID := req.Header.Get(headerRequestID)
	if requestID == "" {
		requestID = uuid.NewString()
		req.Header.Set(headerRequestID, requestID)
	}
	req.Header.Set(headerContentType, contentTypeJSON)
	req.Header.Set(headerAccept, contentTypeJSON)
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}
	return req, requestID, nil
}

func (c *HTTPClient) remoteError(ctx context.Context, log logging.Logger, code int, data []byte, token string) error {
	msg := serverMessage(data)
	if msg == "" {
		msg = fmt.Sprintf("%d %s", code, http.StatusText(code))
	}

	if code == http.StatusUnauthorized && token != "" {
		if c.creds.Expire(ctx, token) {
			c.metrics.AuthExpired()
			log.Warn(ctx, "token rejected, session cleared", "msg", msg)
		}
		return &RemoteError{StatusCode: code, Message: msg, err: ErrAuthExpired}
	}

	log.Debug(ctx, "remote error", "status", code, "msg", msg)
	return &RemoteError{StatusCode: code, Message: msg, err: ErrRemote}
}

// serverMessage pulls the human readable message out of an error body. The
// backend uses "message" for most endpoints and "msg" for a few.
func serverMessage(data []byte) string {
	if !gjson.ValidBytes(data) {
		return ""
	}
	for _, key := range []string{"message", "msg", "error"} {
		if r := gjson.GetBytes(data, key); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return ""
}

// IsAuthError reports whether err means the caller has no usable session.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthenticated) || errors.Is(err, ErrAuthExpired)
}
