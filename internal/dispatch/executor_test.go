package dispatch

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutor_Order(t *testing.T) {
	executor := New()
	defer executor.Close()

	var mux sync.Mutex
	var got []int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		i := i
		require.NoError(t, executor.Submit(context.Background(), Cancellable, func(ctx context.Context) {
			defer wg.Done()
			mux.Lock()
			got = append(got, i)
			mux.Unlock()
		}))
	}
	wg.Wait()
	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestExecutor_Policy(t *testing.T) {
	var testCases = []struct {
		description string
		policy      Policy
		cancel      bool
		expectRun   bool
	}{
		{description: "cancellable live context", policy: Cancellable, expectRun: true},
		{description: "cancellable cancelled context", policy: Cancellable, cancel: true, expectRun: false},
		{description: "must complete cancelled context", policy: MustComplete, cancel: true, expectRun: true},
	}

	for _, testCase := range testCases {
		executor := New()
		gate := make(chan struct{})
		// block the worker so the task under test is dequeued after cancel
		require.NoError(t, executor.Submit(context.Background(), MustComplete, func(ctx context.Context) { <-gate }))

		ctx, cancel := context.WithCancel(context.Background())
		ran := make(chan error, 1)
		require.NoError(t, executor.Submit(ctx, testCase.policy, func(ctx context.Context) { ran <- ctx.Err() }))
		if testCase.cancel {
			cancel()
		}
		close(gate)

		done := make(chan struct{})
		require.NoError(t, executor.Submit(context.Background(), MustComplete, func(ctx context.Context) { close(done) }))
		<-done

		select {
		case err := <-ran:
			assert.True(t, testCase.expectRun, testCase.description)
			assert.NoError(t, err, testCase.description)
		default:
			assert.False(t, testCase.expectRun, testCase.description)
		}
		cancel()
		executor.Close()
	}
}

func TestExecutor_CloseDrainsMustComplete(t *testing.T) {
	executor := New()
	gate := make(chan struct{})
	require.NoError(t, executor.Submit(context.Background(), MustComplete, func(ctx context.Context) { <-gate }))

	var mustRan, cancellableRan bool
	require.NoError(t, executor.Submit(context.Background(), Cancellable, func(ctx context.Context) { cancellableRan = true }))
	require.NoError(t, executor.Submit(context.Background(), MustComplete, func(ctx context.Context) { mustRan = true }))

	go func() {
		time.Sleep(20 * time.Millisecond)
		close(gate)
	}()
	executor.Close()

	assert.True(t, mustRan)
	assert.False(t, cancellableRan)
	assert.ErrorIs(t, executor.Submit(context.Background(), MustComplete, func(ctx context.Context) {}), ErrClosed)
	assert.Equal(t, 0, executor.Pending())
	executor.Close()
}

func TestPolicy_String(t *testing.T) {
	assert.Equal(t, "cancellable", Cancellable.String())
	assert.Equal(t, "mustComplete", MustComplete.String())
}
