package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/bizdesk/internal/client/client"
	"github.com/dmitrijs2005/bizdesk/internal/client/session"
	"github.com/dmitrijs2005/bizdesk/internal/logging"
)

type call struct {
	Method    string
	Path      string
	Query     url.Values
	Body      any
	Anonymous bool
}

// fakeClient implements client.Client. respond returns the JSON body of the
// reply or an error.
type fakeClient struct {
	mu      sync.Mutex
	calls   []call
	respond func(c call) (string, error)
}

func (f *fakeClient) Do(ctx context.Context, method, path string, query url.Values, body, out any, _ ...client.RequestOption) error {
	return f.do(call{Method: method, Path: path, Query: query, Body: body}, out)
}

func (f *fakeClient) DoAnonymous(ctx context.Context, method, path string, query url.Values, body, out any, _ ...client.RequestOption) error {
	return f.do(call{Method: method, Path: path, Query: query, Body: body, Anonymous: true}, out)
}

func (f *fakeClient) do(c call, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if f.respond == nil {
		return nil
	}
	resp, err := f.respond(c)
	if err != nil {
		return err
	}
	if out != nil && resp != "" {
		return json.Unmarshal([]byte(resp), out)
	}
	return nil
}

func (f *fakeClient) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

const testToken = "aaa.bbb.ccc"

func signedInStore(ctx context.Context) *session.Store {
	s := session.NewStore(nil, logging.Discard())
	if err := s.Begin(ctx, testToken, "7"); err != nil {
		panic(err)
	}
	return s
}

func remote(status int, msg string) error {
	return &remoteErr{status: status, msg: msg}
}

// remoteErr stands in for client.RemoteError, whose wrapped sentinel is
// unexported.
type remoteErr struct {
	status int
	msg    string
}

func (e *remoteErr) Error() string { return fmt.Sprintf("status %d: %s", e.status, e.msg) }
func (e *remoteErr) Unwrap() error { return client.ErrRemote }
