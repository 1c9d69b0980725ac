package session

import "errors"

// ErrUnknownRequest is reported when a resolution names an identifier that is
// not pending: never registered, already resolved or dropped by Clear.
var ErrUnknownRequest = errors.New("session: unknown token request")
