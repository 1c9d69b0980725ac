package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// ErrNoTokenSource is returned when the RoundTripper has no token source.
var ErrNoTokenSource = errors.New("transport: token source not configured")

// RoundTripper sets a bearer Authorization header on outgoing requests.
type RoundTripper struct {
	source              oauth2.TokenSource
	transport           http.RoundTripper
	retryOnUnauthorized bool

	mux    sync.Mutex
	cached *oauth2.Token
}

func New(options ...Option) (*RoundTripper, error) {
	ret := &RoundTripper{
		transport:           http.DefaultTransport,
		retryOnUnauthorized: true,
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.source == nil {
		return nil, ErrNoTokenSource
	}
	return ret, nil
}

type authorization struct{ *oauth2.Token }

func (a authorization) header() string {
	return a.Type() + " " + a.AccessToken
}

// RoundTrip authorizes req with the current token. A 401 response is retried
// once with a freshly fetched token unless retries are disabled.
func (r *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	tok, err := r.Token(req.Context(), false)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain authentication token: %w", err)
	}
	first, err := replayable(req, authorization{tok})
	if err != nil {
		return nil, err
	}
	resp, err := r.transport.RoundTrip(first)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || !r.retryOnUnauthorized {
		return resp, nil
	}
	_ = resp.Body.Close()

	if tok, err = r.Token(req.Context(), true); err != nil {
		return nil, fmt.Errorf("failed to refresh authentication token: %w", err)
	}
	retry, err := replayable(req, authorization{tok})
	if err != nil {
		return nil, err
	}
	return r.transport.RoundTrip(retry)
}

// ContextTokenSource is a token source whose lookup honors a per call context.
// The RoundTripper prefers it over oauth2.TokenSource.Token.
type ContextTokenSource interface {
	TokenContext(ctx context.Context) (*oauth2.Token, error)
}

// Token returns the cached token while it is valid, otherwise asks the token
// source. force skips the cache. The source is not called under the lock, so
// a slow lookup does not stall requests served from the cache.
func (r *RoundTripper) Token(ctx context.Context, force bool) (*oauth2.Token, error) {
	r.mux.Lock()
	cached := r.cached
	r.mux.Unlock()
	if !force && cached != nil && cached.Valid() {
		return cached, nil
	}
	tok, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, errors.New("transport: empty authentication token")
	}
	r.mux.Lock()
	r.cached = tok
	r.mux.Unlock()
	return tok, nil
}

func (r *RoundTripper) fetch(ctx context.Context) (*oauth2.Token, error) {
	if source, ok := r.source.(ContextTokenSource); ok {
		return source.TokenContext(ctx)
	}
	type result struct {
		tok *oauth2.Token
		err error
	}
	done := make(chan result, 1)
	go func() {
		tok, err := r.source.Token()
		done <- result{tok, err}
	}()
	select {
	case res := <-done:
		return res.tok, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate drops the cached token.
func (r *RoundTripper) Invalidate() {
	r.mux.Lock()
	r.cached = nil
	r.mux.Unlock()
}
