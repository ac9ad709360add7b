// Package goalqueue provides a sharded work queue that guarantees FIFO order
// per goal while allowing check-ins for different goals to proceed in
// parallel.
//
// Contract: callers must not invoke Submit concurrently for the same goal.
// The check-in processor's in-flight guard provides that serialisation.
package goalqueue

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	apierrors "github.com/nkgevorgyan/twelveweeks/internal/errors"
)

type queuedJob struct {
	ctx context.Context
	job Job
}

// Executor runs Jobs on worker goroutines partitioned by goal id. FIFO
// ordering is preserved within a shard; jobs for different goals may run in
// parallel.
type Executor struct {
	cfg    Config
	queues []chan queuedJob // len == cfg.Shards

	done   chan struct{} // closed in Stop()
	closed uint32        // 0 → running, 1 → closed

	wg sync.WaitGroup
}

// NewExecutor constructs the executor and starts its shard workers.
func NewExecutor(cfg Config) *Executor {
	// Apply zero-value defaults.
	if cfg.Shards <= 0 {
		cfg.Shards = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = 100 * time.Millisecond
	}
	if cfg.MaxAttempts <= 0 {
		// Mutations must not be replayed; retry is opt-in.
		cfg.MaxAttempts = 1
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 100 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 20 * time.Second
	}

	e := &Executor{
		cfg:    cfg,
		queues: make([]chan queuedJob, cfg.Shards),
		done:   make(chan struct{}),
	}
	for i := 0; i < cfg.Shards; i++ {
		ch := make(chan queuedJob, cfg.QueueSize)
		e.queues[i] = ch
		e.wg.Add(1)
		go e.runWorker(i, ch)
	}
	return e
}

// Submit enqueues job for the shard derived from goalID.
//
//   - Returns nil on success.
//   - Returns ErrExecutorClosed if the executor is stopped.
//   - Returns a *QueueFullError (matching ErrQueueFull) if the shard is still
//     full after EnqueueTimeout.
//   - Returns ctx.Err() if the caller-provided context is cancelled first.
func (e *Executor) Submit(ctx context.Context, goalID int, job Job) error {
	// Fast checks to avoid accepting work after Stop().
	if atomic.LoadUint32(&e.closed) == 1 {
		return ErrExecutorClosed
	}
	select {
	case <-e.done:
		return ErrExecutorClosed
	default:
	}

	qj := queuedJob{ctx: ctx, job: job}
	shard := e.shardFor(goalID)
	ch := e.queues[shard]

	timer := time.NewTimer(e.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case ch <- qj:
		submissionsTotal.WithLabelValues(labelFor(shard)).Inc()
		return nil

	case <-e.done: // Stop() may be called while waiting for space
		return ErrExecutorClosed

	case <-ctx.Done():
		return ctx.Err()

	case <-timer.C:
		queueFullTotal.WithLabelValues(labelFor(shard)).Inc()
		return &QueueFullError{
			Shard:    shard,
			Length:   len(ch),
			Capacity: cap(ch),
		}
	}
}

// Barrier enqueues a no-op job on the shard for goalID and waits until it
// runs, ensuring all previously submitted jobs for that goal have completed.
func (e *Executor) Barrier(ctx context.Context, goalID int) error {
	done := make(chan struct{})
	j := JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := e.Submit(ctx, goalID, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Stop signals every worker to finish draining its current queue, waits for
// them to terminate, and then returns. Idempotent and safe for concurrent
// use.
func (e *Executor) Stop() {
	if !atomic.CompareAndSwapUint32(&e.closed, 0, 1) {
		return // already closed
	}

	log.Debug().Int("shards", e.cfg.Shards).Msg("goalqueue: stopping executor")
	close(e.done)
	e.wg.Wait()
	log.Debug().Msg("goalqueue: executor stopped, all queues drained")
}

// Close lets Executor satisfy io.Closer.
func (e *Executor) Close() error {
	e.Stop()
	return nil
}

// ------------------------- internals -------------------------

func (e *Executor) runWorker(idx int, ch <-chan queuedJob) {
	defer e.wg.Done()

	// Protect the executor from a crashing job.
	defer func() {
		if r := recover(); r != nil {
			log.Error().Int("worker", idx).Interface("panic", r).Msg("goalqueue: worker panic")
		}
	}()

	label := labelFor(idx)

	for {
		select {
		case qj := <-ch:
			if qj.job == nil {
				continue
			}

			// Honour caller context so a cancelled job doesn't stall the shard.
			select {
			case <-qj.ctx.Done():
				e.safeHandleError(qj.ctx.Err())
			default:
				e.runJob(label, qj)
			}

			queueDepth.WithLabelValues(label).Set(float64(len(ch)))

		case <-e.done:
			// Drain remaining jobs, preserving FIFO, then exit.
			drained := 0
			for {
				select {
				case qj := <-ch:
					if qj.job != nil {
						_ = qj.job.Run(qj.ctx)
						drained++
					}
				default:
					if drained > 0 {
						log.Debug().Int("worker", idx).Int("drained", drained).Msg("goalqueue: drained remaining jobs")
					}
					queueDepth.WithLabelValues(label).Set(0)
					return
				}
			}
		}
	}
}

// runJob executes one job with the configured attempt budget. Irrecoverable
// errors never retry; recoverable errors retry with exponential backoff until
// MaxAttempts is exhausted.
func (e *Executor) runJob(label string, qj queuedJob) {
	attempts := 0
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = e.cfg.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = e.cfg.MaxInterval
	exp.Reset()

	for {
		start := time.Now()
		err := qj.job.Run(qj.ctx)
		runDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

		if err == nil {
			return
		}
		if apierrors.IsIrrecoverable(err) {
			e.safeHandleError(err)
			return
		}
		if attempts >= e.cfg.MaxAttempts-1 {
			e.safeHandleError(err)
			return
		}

		attempts++
		wait := exp.NextBackOff()
		select {
		case <-time.After(wait):
		case <-e.done:
			return
		case <-qj.ctx.Done():
			e.safeHandleError(qj.ctx.Err())
			return
		}
	}
}

func (e *Executor) safeHandleError(err error) {
	if err == nil || e.cfg.ErrorHandler == nil {
		return
	}
	func() {
		// Guard against panics in the user-supplied handler.
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("goalqueue: error handler panic")
			}
		}()
		e.cfg.ErrorHandler(err)
	}()
}

// shardFor maps a goal id onto a shard. Ids are small positive integers, so
// a plain modulus distributes them evenly.
func (e *Executor) shardFor(goalID int) int {
	if goalID < 0 {
		goalID = -goalID
	}
	return goalID % e.cfg.Shards
}
