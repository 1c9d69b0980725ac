package delegate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viant/cardbridge/internal/collection"
	"github.com/viant/cardbridge/internal/dispatch"
	"github.com/viant/cardbridge/session"
	"go.uber.org/zap"
)

// Notifier forwards a pending request identifier to the host, which is
// expected to answer with ReceiveToken.
type Notifier func(ctx context.Context, identifier string) error

// Delegate brokers token requests between a vendor SDK and the host.
type Delegate struct {
	broker       *session.Broker
	executor     *dispatch.Executor
	ownsExecutor bool
	logger       *zap.Logger
	timeout      time.Duration
	watches      *collection.SyncMap[string, func()]

	mux        sync.RWMutex
	notifier   Notifier
	generation uint64
	ended      chan struct{} // closed when the current session ends
}

// Start installs notifier and begins a new session. Requests still pending
// from a previous session are dropped.
func (d *Delegate) Start(notifier Notifier) {
	d.mux.Lock()
	d.notifier = notifier
	dropped := d.endSession()
	d.mux.Unlock()
	if dropped > 0 {
		d.logger.Info("dropped stale token requests", zap.Int("count", dropped))
	}
}

// Stop ends the session. Pending requests are dropped without running their
// continuations; later token requests are denied until Start is called again.
func (d *Delegate) Stop() {
	d.mux.Lock()
	d.notifier = nil
	dropped := d.endSession()
	d.mux.Unlock()
	if dropped > 0 {
		d.logger.Info("session ended with pending token requests", zap.Int("count", dropped))
	}
}

// endSession must be called with d.mux held.
func (d *Delegate) endSession() int {
	d.generation++
	close(d.ended)
	d.ended = make(chan struct{})
	dropped := d.broker.Clear()
	d.watches.Range(func(id string, release func()) bool {
		release()
		return true
	})
	d.watches.Clear()
	return dropped
}

// Active reports whether a session delegate is installed.
func (d *Delegate) Active() bool {
	d.mux.RLock()
	defer d.mux.RUnlock()
	return d.notifier != nil
}

// Pending returns the number of unanswered token requests.
func (d *Delegate) Pending() int {
	return d.broker.Len()
}

// RequestToken asks the host for a token; handler receives it, or nil on
// denial. When no session is active handler receives nil right away. A done
// ctx or an elapsed timeout denies the request. A request overtaken by the
// end of its session is dropped like any other pending request. The returned
// identifier is empty when no request was registered.
func (d *Delegate) RequestToken(ctx context.Context, handler session.Callback) string {
	id, _ := d.requestToken(ctx, handler)
	return id
}

func (d *Delegate) requestToken(ctx context.Context, handler session.Callback) (string, <-chan struct{}) {
	if ctx == nil {
		ctx = context.Background()
	}
	d.mux.RLock()
	notifier := d.notifier
	ended := d.ended
	generation := d.generation
	d.mux.RUnlock()
	if notifier == nil {
		d.logger.Debug("token requested without session delegate")
		d.deliver(ctx, handler, nil)
		return "", ended
	}

	var (
		mux       sync.Mutex
		id        string
		released  bool
		timer     *time.Timer
		stopWatch func() bool
	)
	release := func() {
		mux.Lock()
		defer mux.Unlock()
		released = true
		if timer != nil {
			timer.Stop()
		}
		if stopWatch != nil {
			stopWatch()
		}
	}
	id = d.broker.Register(func(token *string) {
		release()
		d.watches.Delete(id)
		d.deliver(ctx, handler, token)
	})

	d.mux.RLock()
	current := d.generation == generation
	if current {
		d.watches.Put(id, release)
	}
	d.mux.RUnlock()
	if !current {
		d.broker.Drop(id)
		d.logger.Debug("token request overtaken by session end", zap.String("identifier", id))
		return "", ended
	}

	mux.Lock()
	if released {
		mux.Unlock()
		return "", ended
	}
	stopWatch = context.AfterFunc(ctx, func() {
		d.deny(id, "token request cancelled")
	})
	if d.timeout > 0 {
		timer = time.AfterFunc(d.timeout, func() {
			d.deny(id, "token request timed out")
		})
	}
	mux.Unlock()

	d.logger.Debug("token requested", zap.String("identifier", id))
	err := d.executor.Submit(ctx, dispatch.Cancellable, func(ctx context.Context) {
		if _, ok := d.broker.Pending(id); !ok {
			return
		}
		if err := notifier(ctx, id); err != nil {
			d.logger.Warn("failed to notify host", zap.String("identifier", id), zap.Error(err))
			d.deny(id, "token request not delivered")
		}
	})
	if err != nil {
		d.deny(id, "token request not dispatched")
	}
	return id, ended
}

// deny resolves id with no token; a no-op if id was already resolved.
func (d *Delegate) deny(id string, reason string) {
	if err := d.broker.Resolve(id, nil); err == nil {
		d.logger.Info(reason, zap.String("identifier", id))
	}
}

func (d *Delegate) deliver(ctx context.Context, handler session.Callback, token *string) {
	if handler == nil {
		return
	}
	err := d.executor.Submit(ctx, dispatch.MustComplete, func(context.Context) {
		handler(token)
	})
	if errors.Is(err, dispatch.ErrClosed) {
		handler(token)
	}
}

// Token requests a token and waits for it. It returns ErrTokenUnavailable on
// denial or when the session ends while waiting.
func (d *Delegate) Token(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	result := make(chan *string, 1)
	_, ended := d.requestToken(ctx, func(token *string) {
		result <- token
	})
	select {
	case token := <-result:
		if token == nil {
			return "", ErrTokenUnavailable
		}
		return *token, nil
	case <-ended:
		return "", ErrTokenUnavailable
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ReceiveToken resolves the request identified by id with token (nil denies
// it). An unknown identifier is logged and returned, never panicked on.
func (d *Delegate) ReceiveToken(ctx context.Context, id string, token *string) error {
	err := d.broker.Resolve(id, token)
	if err != nil {
		d.logger.Warn("ignored token response", zap.String("identifier", id), zap.Error(err))
		return err
	}
	d.logger.Debug("token received", zap.String("identifier", id), zap.Bool("denied", token == nil))
	return nil
}

// Close stops the session and, if the Delegate created its executor, shuts
// the executor down after delivering queued continuations.
func (d *Delegate) Close() {
	d.Stop()
	if d.ownsExecutor {
		d.executor.Close()
	}
}

// New creates a Delegate backed by broker.
func New(broker *session.Broker, options ...Option) *Delegate {
	if broker == nil {
		broker = session.New()
	}
	ret := &Delegate{
		broker:  broker,
		logger:  zap.NewNop(),
		watches: collection.NewSyncMap[string, func()](),
		ended:   make(chan struct{}),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.executor == nil {
		ret.executor = dispatch.New()
		ret.ownsExecutor = true
	}
	return ret
}
