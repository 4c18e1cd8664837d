package batch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// JobState is the lifecycle state of a background bulk job.
type JobState string

const (
	JobRunning  JobState = "running"
	JobFinished JobState = "finished"
	JobFailed   JobState = "failed"
)

// Job is a bulk run executing in the background. Progress can be read at any
// time while later batches are still running.
type Job struct {
	ID        uuid.UUID
	Kind      string
	StartedAt time.Time

	mu         sync.RWMutex
	state      JobState
	progress   domain.BulkProgress
	summary    *domain.BulkSummary
	err        error
	finishedAt time.Time
	done       chan struct{}
}

// Started is handed back when a bulk request is accepted. Job is nil when the
// selection was empty, in which case Summary holds the no-op summary.
type Started struct {
	Job     *Job
	Summary *domain.BulkSummary
}

func newJob(kind string, total int, now time.Time) *Job {
	return &Job{
		ID:        uuid.New(),
		Kind:      kind,
		StartedAt: now,
		state:     JobRunning,
		progress:  domain.BulkProgress{Total: total},
		done:      make(chan struct{}),
	}
}

// Report records a progress snapshot. It satisfies ProgressFunc.
func (j *Job) Report(p domain.BulkProgress) {
	j.mu.Lock()
	j.progress = p
	j.mu.Unlock()
}

// Progress returns the latest progress snapshot.
func (j *Job) Progress() domain.BulkProgress {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.progress
}

// Done is closed once the job has finished.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result returns the summary and error once the job is done. Before that
// summary is nil.
func (j *Job) Result() (*domain.BulkSummary, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.summary, j.err
}

func (j *Job) finish(summary domain.BulkSummary, err error, now time.Time) {
	j.mu.Lock()
	j.summary = &summary
	j.err = err
	j.finishedAt = now
	j.state = JobFinished
	if err != nil {
		j.state = JobFailed
	}
	j.mu.Unlock()
	close(j.done)
}

func (j *Job) finishedBefore(t time.Time) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state != JobRunning && j.finishedAt.Before(t)
}

// JobSnapshot is the pollable view of a job.
type JobSnapshot struct {
	ID         uuid.UUID           `json:"id"`
	Kind       string              `json:"kind"`
	State      JobState            `json:"state"`
	Progress   domain.BulkProgress `json:"progress"`
	Summary    *domain.BulkSummary `json:"summary,omitempty"`
	Error      string              `json:"error,omitempty"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt *time.Time          `json:"finishedAt,omitempty"`
}

// Snapshot returns a consistent copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.RLock()
	defer j.mu.RUnlock()

	s := JobSnapshot{
		ID:        j.ID,
		Kind:      j.Kind,
		State:     j.state,
		Progress:  j.progress,
		Summary:   j.summary,
		StartedAt: j.StartedAt,
	}
	if j.err != nil {
		s.Error = j.err.Error()
	}
	if j.state != JobRunning {
		t := j.finishedAt
		s.FinishedAt = &t
	}
	return s
}
