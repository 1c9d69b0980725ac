package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/viant/cardbridge/internal/collection"
)

// Broker owns the set of pending token requests.
type Broker struct {
	pending *collection.SyncMap[string, *Request]
	newID   func() string
}

// Register stores callback under a fresh identifier and returns it. The
// identifier is never shared with another pending request; a colliding
// candidate is discarded and regenerated.
func (b *Broker) Register(callback Callback) string {
	if callback == nil {
		callback = func(*string) {}
	}
	request := &Request{CreatedAt: time.Now(), callback: callback}
	for {
		request.ID = b.newID()
		if b.pending.PutIfAbsent(request.ID, request) {
			return request.ID
		}
	}
}

// Resolve removes the pending request for id and runs its callback with
// token. The callback runs inline on the caller's goroutine. An identifier
// that is not pending yields ErrUnknownRequest and no callback runs.
func (b *Broker) Resolve(id string, token *string) error {
	request, ok := b.pending.Take(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRequest, id)
	}
	request.callback(token)
	return nil
}

// Drop removes the pending request for id without running its callback. It
// reports whether the request was pending.
func (b *Broker) Drop(id string) bool {
	_, ok := b.pending.Take(id)
	return ok
}

// Clear drops all pending requests without running their callbacks and
// returns the number dropped.
func (b *Broker) Clear() int {
	return b.pending.Clear()
}

// Len returns the number of pending requests.
func (b *Broker) Len() int {
	return b.pending.Len()
}

// Pending returns the pending request for id.
func (b *Broker) Pending(id string) (*Request, bool) {
	return b.pending.Get(id)
}

// New creates a Broker
func New(options ...Option) *Broker {
	ret := &Broker{
		pending: collection.NewSyncMap[string, *Request](),
		newID:   uuid.NewString,
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
