// Package persist runs fire-and-forget writes to external stores.
// Gameplay state is final before a write is attempted; failures are logged and counted, never rolled back.
package persist

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hunters/internal/metrics"
)

// Job is one pending write.
type Job struct {
	Store string // "inventory", "diary", "profile" — metrics label
	Op    string
	Do    func(ctx context.Context) error
}

// Writer is a bounded queue drained by a fixed set of workers.
type Writer struct {
	queue   chan Job
	workers int
	timeout time.Duration

	dropped atomic.Int64
	failed  atomic.Int64
}

// NewWriter creates a writer. Call Run to start the workers.
func NewWriter(workers, queueSize int, timeout time.Duration) *Writer {
	return &Writer{
		queue:   make(chan Job, max(queueSize, 1)),
		workers: max(workers, 1),
		timeout: timeout,
	}
}

// Enqueue schedules job without blocking. A full queue drops the job.
func (w *Writer) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		w.dropped.Add(1)
		metrics.PersistenceErrors.WithLabelValues(job.Store).Inc()
		slog.Warn("persistence queue full, write dropped", "store", job.Store, "op", job.Op)
	}
}

// Run starts the workers and blocks until ctx is cancelled.
// Queued jobs are drained before Run returns.
func (w *Writer) Run(ctx context.Context) error {
	var g errgroup.Group
	for range w.workers {
		g.Go(func() error {
			w.work(ctx)
			return nil
		})
	}
	return g.Wait()
}

func (w *Writer) work(ctx context.Context) {
	for {
		select {
		case job := <-w.queue:
			w.do(context.WithoutCancel(ctx), job)
		case <-ctx.Done():
			w.drain(context.WithoutCancel(ctx))
			return
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	for {
		select {
		case job := <-w.queue:
			w.do(ctx, job)
		default:
			return
		}
	}
}

func (w *Writer) do(ctx context.Context, job Job) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}
	if err := job.Do(ctx); err != nil {
		w.failed.Add(1)
		metrics.PersistenceErrors.WithLabelValues(job.Store).Inc()
		slog.Error("persistence write failed", "store", job.Store, "op", job.Op, "error", err)
	}
}

// Dropped returns how many jobs were dropped on a full queue.
func (w *Writer) Dropped() int64 { return w.dropped.Load() }

// Failed returns how many jobs returned an error.
func (w *Writer) Failed() int64 { return w.failed.Load() }
