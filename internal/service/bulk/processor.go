// Package bulk applies one review decision to many profiles in fixed-size
// batches, isolating per-item failures and writing one summary audit entry.
// Ids of other item kinds fail without being touched.
package bulk

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
)

type reviewer interface {
	ApproveProfile(ctx context.Context, id uuid.UUID) (*review.Outcome, error)
	RequestChanges(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error)
}

type labelLookup interface {
	LabelsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type auditWriter interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

type notifier interface {
	Dispatch(ctx context.Context, n domain.Notification)
}

type jobStarter interface {
	Start(ctx context.Context, kind string, total int, fn batch.JobFunc) *batch.Job
}

// JobKindReview identifies bulk review jobs in the registry.
const JobKindReview = "review"

// Processor runs bulk review decisions.
type Processor struct {
	reviews   reviewer
	labels    labelLookup
	audit     auditWriter
	notify    notifier
	jobs      jobStarter
	batchSize int
	log       *slog.Logger
}

// NewProcessor creates a Processor. batchSize below 1 falls back to
// batch.DefaultSize.
func NewProcessor(
	log *slog.Logger,
	reviews reviewer,
	labels labelLookup,
	audit auditWriter,
	notify notifier,
	jobs jobStarter,
	batchSize int,
) *Processor {
	if batchSize < 1 {
		batchSize = batch.DefaultSize
	}
	return &Processor{
		reviews:   reviews,
		labels:    labels,
		audit:     audit,
		notify:    notify,
		jobs:      jobs,
		batchSize: batchSize,
		log:       log.With("service", "bulk"),
	}
}

// Start validates the request and processes it in the background. The job
// outlives the caller's context.
func (p *Processor) Start(ctx context.Context, in ReviewInput) (*batch.Started, error) {
	actor, ids, err := p.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &batch.Started{Summary: batch.Noop(in.Decision)}, nil
	}

	job := p.jobs.Start(ctx, JobKindReview, len(ids), func(jobCtx context.Context, report batch.ProgressFunc) (domain.BulkSummary, error) {
		return p.execute(jobCtx, actor, in, ids, report)
	})

	p.log.InfoContext(ctx, "bulk review started",
		slog.String("job_id", job.ID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.String("decision", string(in.Decision)),
		slog.Int("total", len(ids)),
	)

	return &batch.Started{Job: job}, nil
}

// Run processes the request synchronously and returns the summary.
func (p *Processor) Run(ctx context.Context, in ReviewInput) (*domain.BulkSummary, error) {
	actor, ids, err := p.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return batch.Noop(in.Decision), nil
	}

	summary, err := p.execute(ctx, actor, in, ids, nil)
	if err != nil {
		return &summary, err
	}
	return &summary, nil
}

func (p *Processor) prepare(ctx context.Context, in ReviewInput) (domain.Actor, []uuid.UUID, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return domain.Actor{}, nil, err
	}
	if !actor.CanModerate() {
		return domain.Actor{}, nil, domain.ErrForbidden
	}
	if err := in.Validate(); err != nil {
		return domain.Actor{}, nil, err
	}
	return actor, batch.Unique(in.IDs), nil
}

func (p *Processor) execute(ctx context.Context, actor domain.Actor, in ReviewInput, ids []uuid.UUID, report batch.ProgressFunc) (domain.BulkSummary, error) {
	labels, err := p.labels.LabelsByIDs(ctx, ids)
	if err != nil {
		p.log.WarnContext(ctx, "bulk label lookup failed, using ids",
			slog.String("error", err.Error()),
		)
		labels = nil
	}

	results := batch.Run(ctx, ids, p.batchSize, func(ctx context.Context, id uuid.UUID) error {
		out, err := p.decide(ctx, in, id)
		if err != nil {
			return err
		}
		p.notify.Dispatch(ctx, out.Notification)
		return nil
	}, report)

	summary := batch.Summarize(in.Decision, results, labels)

	details := map[string]any{
		"decision":       string(in.Decision),
		"total":          summary.Total,
		"succeededCount": summary.Succeeded,
		"failedCount":    summary.Failed,
		"failedIds":      summary.FailedIDs(),
	}
	if note := in.trimmedNote(); note != "" {
		details["note"] = note
	}
	entry := domain.NewAuditEntry(actor, domain.ActionBulkReviewExecuted, domain.ScopeProfile, nil, "", details)

	// The summary is recorded even when the run hit its deadline.
	if err := p.audit.Write(context.WithoutCancel(ctx), entry); err != nil {
		return summary, fmt.Errorf("audit log: %w", err)
	}

	p.log.InfoContext(ctx, "bulk review finished",
		slog.String("actor_id", actor.ID.String()),
		slog.String("decision", string(in.Decision)),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

func (p *Processor) decide(ctx context.Context, in ReviewInput, id uuid.UUID) (*review.Outcome, error) {
	switch in.Decision {
	case domain.BulkApprove:
		return p.reviews.ApproveProfile(ctx, id)
	case domain.BulkRequestChanges:
		return p.reviews.RequestChanges(ctx, id, in.Note)
	default:
		return nil, fmt.Errorf("unsupported decision %q", in.Decision)
	}
}
