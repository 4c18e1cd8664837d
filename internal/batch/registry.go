package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// JobFunc is the body of a background job. It must report progress through
// report and return the folded summary.
type JobFunc func(ctx context.Context, report ProgressFunc) (domain.BulkSummary, error)

// Registry starts bulk jobs in the background and keeps them pollable until
// retention expires after they finish.
type Registry struct {
	timeout   time.Duration
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time

	mu   sync.Mutex
	jobs map[uuid.UUID]*Job
	wg   sync.WaitGroup
}

// NewRegistry creates a Registry. timeout bounds a single job; retention is
// how long a finished job stays pollable.
func NewRegistry(log *slog.Logger, timeout, retention time.Duration) *Registry {
	return &Registry{
		timeout:   timeout,
		retention: retention,
		log:       log.With("component", "batch.registry"),
		now:       time.Now,
		jobs:      make(map[uuid.UUID]*Job),
	}
}

// Start launches fn in the background. The job keeps ctx values (the caller
// identity) but not its cancellation, so dispatched items always complete
// even if the caller goes away.
func (r *Registry) Start(ctx context.Context, kind string, total int, fn JobFunc) *Job {
	job := newJob(kind, total, r.now())

	r.mu.Lock()
	r.pruneLocked()
	r.jobs[job.ID] = job
	r.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()

		summary, err := r.run(jobCtx, job, fn)
		job.finish(summary, err, r.now())

		if err != nil {
			r.log.ErrorContext(jobCtx, "bulk job failed",
				slog.String("job_id", job.ID.String()),
				slog.String("kind", kind),
				slog.String("error", err.Error()),
			)
			return
		}
		r.log.InfoContext(jobCtx, "bulk job finished",
			slog.String("job_id", job.ID.String()),
			slog.String("kind", kind),
			slog.Int("succeeded", summary.Succeeded),
			slog.Int("failed", summary.Failed),
		)
	}()

	return job
}

func (r *Registry) run(ctx context.Context, job *Job, fn JobFunc) (summary domain.BulkSummary, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("bulk job %s: %w", job.ID, &PanicError{Value: p})
		}
	}()
	return fn(ctx, job.Report)
}

// Get returns a job by id, or domain.ErrNotFound once it expired.
func (r *Registry) Get(id uuid.UUID) (*Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return job, nil
}

// Active counts jobs that have not finished yet.
func (r *Registry) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, job := range r.jobs {
		select {
		case <-job.done:
		default:
			n++
		}
	}
	return n
}

// Wait blocks until every started job has finished or ctx is done.
func (r *Registry) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Registry) pruneLocked() {
	cutoff := r.now().Add(-r.retention)
	for id, job := range r.jobs {
		if job.finishedBefore(cutoff) {
			delete(r.jobs, id)
		}
	}
}
