// Package session correlates authentication token requests with token
// responses that arrive later over an asynchronous boundary.
//
// A Broker hands out an opaque identifier for every registered callback. The
// identifier travels to whoever acquires the token (typically the host
// application on the other side of a message bridge) and comes back with the
// answer. Resolve matches the two and runs the callback at most once:
//
//	id := broker.Register(func(token *string) { ... })
//	// ... later, possibly from another goroutine
//	err := broker.Resolve(id, &token)
//
// A nil token is a denial, not an error. Clear drops every pending request
// without running its callback.
package session
