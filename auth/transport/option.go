package transport

import (
	"net/http"

	"golang.org/x/oauth2"
)

type Option func(*RoundTripper)

// WithTokenSource sets token source
func WithTokenSource(source oauth2.TokenSource) Option {
	return func(t *RoundTripper) {
		t.source = source
	}
}

// WithTransport sets the underlying transport
func WithTransport(transport http.RoundTripper) Option {
	return func(t *RoundTripper) {
		if transport != nil {
			t.transport = transport
		}
	}
}

// WithRetryOnUnauthorized controls whether a 401 response is replayed once
// with a freshly requested token.
func WithRetryOnUnauthorized(retry bool) Option {
	return func(t *RoundTripper) {
		t.retryOnUnauthorized = retry
	}
}
