package jobqueue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestQueueRunsEnqueuedJobs(t *testing.T) {
	q := New(context.Background(), 8, 2, zap.NewNop())

	var ran int32
	for i := 0; i < 5; i++ {
		require.NoError(t, q.Enqueue(func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		}))
	}

	q.Shutdown()
	assert.EqualValues(t, 5, atomic.LoadInt32(&ran))
}

func TestQueueFullReturnsError(t *testing.T) {
	// No workers, capacity one: the second enqueue must not block.
	q := New(context.Background(), 1, 0, zap.NewNop())

	require.NoError(t, q.Enqueue(func(ctx context.Context) {}))
	assert.ErrorIs(t, q.Enqueue(func(ctx context.Context) {}), ErrQueueFull)
}

func TestQueueClosedReturnsError(t *testing.T) {
	q := New(context.Background(), 1, 1, zap.NewNop())
	q.Shutdown()
	assert.ErrorIs(t, q.Enqueue(func(ctx context.Context) {}), ErrQueueClosed)
}

func TestQueueRecoversFromPanickingJob(t *testing.T) {
	q := New(context.Background(), 4, 1, zap.NewNop())

	done := make(chan struct{})
	require.NoError(t, q.Enqueue(func(ctx context.Context) { panic("boom") }))
	require.NoError(t, q.Enqueue(func(ctx context.Context) { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panic")
	}
	q.Shutdown()
}
