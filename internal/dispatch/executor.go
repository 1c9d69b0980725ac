// Package dispatch runs tasks on a single designated goroutine in submission
// order.
package dispatch

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when submitting to a closed Executor.
var ErrClosed = errors.New("dispatch: executor closed")

// Policy controls what happens to a queued task when its submitter has moved on.
type Policy int

const (
	// Cancellable tasks are skipped when the submitting context is done before
	// they start, and dropped when the executor closes.
	Cancellable Policy = iota
	// MustComplete tasks always run, including tasks still queued at Close.
	MustComplete
)

func (p Policy) String() string {
	switch p {
	case MustComplete:
		return "mustComplete"
	default:
		return "cancellable"
	}
}

// Task is a unit of work. The context is the submitter's context, detached
// from cancellation for MustComplete tasks.
type Task func(ctx context.Context)

type job struct {
	ctx    context.Context
	policy Policy
	task   Task
}

// Executor is a serial task queue.
type Executor struct {
	mux     sync.Mutex
	queue   []*job
	wake    chan struct{}
	closed  bool
	closing chan struct{}
	done    chan struct{}
}

// Submit enqueues task.
func (e *Executor) Submit(ctx context.Context, policy Policy, task Task) error {
	if task == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if policy == MustComplete {
		ctx = context.WithoutCancel(ctx)
	}
	e.mux.Lock()
	if e.closed {
		e.mux.Unlock()
		return ErrClosed
	}
	e.queue = append(e.queue, &job{ctx: ctx, policy: policy, task: task})
	e.mux.Unlock()
	select {
	case e.wake <- struct{}{}:
	default:
	}
	return nil
}

// Pending returns the number of queued tasks that have not started.
func (e *Executor) Pending() int {
	e.mux.Lock()
	defer e.mux.Unlock()
	return len(e.queue)
}

// Close stops accepting tasks, runs the queued MustComplete tasks, drops the
// rest and waits for the worker to exit. Close is idempotent.
func (e *Executor) Close() {
	e.mux.Lock()
	if !e.closed {
		e.closed = true
		close(e.closing)
	}
	e.mux.Unlock()
	<-e.done
}

func (e *Executor) next() (*job, bool) {
	e.mux.Lock()
	defer e.mux.Unlock()
	if len(e.queue) == 0 {
		return nil, e.closed
	}
	j := e.queue[0]
	e.queue[0] = nil
	e.queue = e.queue[1:]
	return j, false
}

func (e *Executor) run() {
	defer close(e.done)
	for {
		j, finished := e.next()
		if finished {
			return
		}
		if j == nil {
			select {
			case <-e.wake:
			case <-e.closing:
			}
			continue
		}
		if !e.runnable(j) {
			continue
		}
		j.task(j.ctx)
	}
}

func (e *Executor) runnable(j *job) bool {
	if j.policy == MustComplete {
		return true
	}
	if j.ctx.Err() != nil {
		return false
	}
	select {
	case <-e.closing:
		return false
	default:
		return true
	}
}

// New creates an Executor and starts its worker goroutine.
func New() *Executor {
	ret := &Executor{
		wake:    make(chan struct{}, 1),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go ret.run()
	return ret
}
