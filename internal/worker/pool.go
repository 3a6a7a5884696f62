// Package worker bounds concurrent transcode work. The external engine can
// eat several cores per invocation, so admission is capped by a weighted
// semaphore sized to the host.
package worker

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	"mediaforge/internal/jobs"
	"mediaforge/internal/pkg/errors"
	"mediaforge/internal/pkg/logger"
)

// Pool admits at most size jobs at a time. Submit blocks up to admitWait for
// a slot; beyond that the caller gets a resource-exhausted error as
// backpressure. Each admitted job runs under a wall-clock timeout.
type Pool struct {
	sem        *semaphore.Weighted
	admitWait  time.Duration
	jobTimeout time.Duration
	log        *logger.Logger
}

func NewPool(size int, admitWait, jobTimeout time.Duration, log *logger.Logger) *Pool {
	if size < 1 {
		size = 1
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Pool{
		sem:        semaphore.NewWeighted(int64(size)),
		admitWait:  admitWait,
		jobTimeout: jobTimeout,
		log:        log.WithComponent("worker"),
	}
}

// Task is the future handle for a submitted job.
type Task struct {
	done chan struct{}
	job  *jobs.Job
	err  error
}

// Done is closed when the job reaches a terminal state.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the job finishes or ctx is canceled.
func (t *Task) Wait(ctx context.Context) (*jobs.Job, error) {
	select {
	case <-t.done:
		return t.job, t.err
	case <-ctx.Done():
		return nil, errors.WrapWithCode(ctx.Err(), errors.CodeTimeout, "worker.wait", "timed out waiting for job")
	}
}

// Result returns the outcome after Done is closed.
func (t *Task) Result() (*jobs.Job, error) {
	return t.job, t.err
}

// Submit admits run into the pool and returns its future. The job context
// derives from ctx, carries the pool's wall-clock budget, and is canceled
// when the job returns, releasing the slot either way.
func (p *Pool) Submit(ctx context.Context, run func(ctx context.Context) (*jobs.Job, error)) (*Task, error) {
	admitCtx, cancel := context.WithTimeout(ctx, p.admitWait)
	defer cancel()

	if err := p.sem.Acquire(admitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, errors.WrapWithCode(ctx.Err(), errors.CodeTimeout, "worker.submit", "caller gone before admission")
		}
		return nil, errors.New(errors.CodeResourceExhaust, "no worker capacity, try again later")
	}

	t := &Task{done: make(chan struct{})}
	jobCtx, jobCancel := context.WithTimeout(ctx, p.jobTimeout)

	go func() {
		defer p.sem.Release(1)
		defer jobCancel()
		defer close(t.done)

		start := time.Now()
		t.job, t.err = run(jobCtx)
		p.log.FromContext(jobCtx).Debug("job slot released",
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}()

	return t, nil
}
