package delegate

import (
	"time"

	"github.com/viant/cardbridge/internal/dispatch"
	"go.uber.org/zap"
)

// Option configures a Delegate.
type Option func(d *Delegate)

// WithExecutor sets the execution context used for continuations and host
// notifications.
func WithExecutor(executor *dispatch.Executor) Option {
	return func(d *Delegate) {
		d.executor = executor
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Delegate) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTimeout denies requests the host has not answered within timeout.
// Zero disables the deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Delegate) {
		d.timeout = timeout
	}
}
