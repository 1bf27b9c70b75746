package jobqueue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	// ErrQueueFull is returned when the queue cannot accept more jobs.
	ErrQueueFull = errors.New("job queue is full")
	// ErrQueueClosed is returned when the queue has been shut down.
	ErrQueueClosed = errors.New("job queue is closed")
)

// Job is a unit of background work.
type Job func(ctx context.Context)

// Queue runs jobs on a fixed pool of workers behind a bounded channel. It is
// the deferred-job boundary between the request/response cycle and the
// accounting export: enqueueing never blocks, and a full queue is an error
// the caller logs rather than a reason to fail the request.
type Queue struct {
	jobs    chan Job
	wg      sync.WaitGroup
	closing int32
	log     *zap.Logger
}

// New creates a queue and starts its workers. The workers stop when ctx is
// canceled or Shutdown is called.
func New(ctx context.Context, capacity, workers int, log *zap.Logger) *Queue {
	q := &Queue{
		jobs: make(chan Job, capacity),
		log:  log,
	}
	q.start(ctx, workers)
	return q
}

func (q *Queue) start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go func(workerID int) {
			defer q.wg.Done()
			for {
				select {
				case job, ok := <-q.jobs:
					if !ok {
						return
					}
					q.run(ctx, job, workerID)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}
}

func (q *Queue) run(ctx context.Context, job Job, workerID int) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("background job panicked",
				zap.Int("worker", workerID), zap.Any("panic", r))
		}
	}()
	job(ctx)
}

// Enqueue adds a job without blocking. Returns ErrQueueFull when the buffer
// is exhausted and ErrQueueClosed after Shutdown.
func (q *Queue) Enqueue(job Job) error {
	if atomic.LoadInt32(&q.closing) == 1 {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// Shutdown closes the queue and waits for in-flight jobs to finish.
func (q *Queue) Shutdown() {
	if atomic.CompareAndSwapInt32(&q.closing, 0, 1) {
		close(q.jobs)
		q.wg.Wait()
	}
}
