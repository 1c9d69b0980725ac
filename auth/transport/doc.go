// Package transport provides an http.RoundTripper that authenticates outgoing
// requests with bearer tokens obtained from an oauth2.TokenSource, typically
// one backed by the host's session delegate.
package transport
