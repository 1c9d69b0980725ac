package session

import "time"

// Callback receives the token for a pending request, or nil when the token
// was denied or is unavailable.
type Callback func(token *string)

// Request represents a pending token request.
type Request struct {
	ID        string
	CreatedAt time.Time

	callback Callback
}

// Age returns how long the request has been pending.
func (r *Request) Age() time.Duration {
	return time.Since(r.CreatedAt)
}
