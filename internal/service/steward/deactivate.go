package steward

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Deactivate ends an active assignment. Missing and already inactive
// assignments return domain.ErrNotFound.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID, note *string) (*domain.StewardAssignment, error) {
	actor, err := requireModerator(ctx)
	if err != nil {
		return nil, err
	}
	note, err = normalizeNote(note)
	if err != nil {
		return nil, err
	}
	return s.deactivate(ctx, actor, id, note)
}

func (s *Service) deactivate(ctx context.Context, actor domain.Actor, id uuid.UUID, note *string) (*domain.StewardAssignment, error) {
	var a *domain.StewardAssignment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		a, err = s.assignments.Deactivate(txCtx, id, s.now(), note)
		if err != nil {
			return fmt.Errorf("deactivate assignment: %w", err)
		}

		details := map[string]any{
			"assignmentId": a.ID.String(),
			"stewardEmail": a.StewardEmail,
		}
		if note != nil {
			details["note"] = *note
		}
		entry := domain.NewAuditEntry(actor, domain.ActionStewardDeactivated, domain.ScopeSteward,
			&a.ProfileID, a.ProfileLabel, details)
		if err := s.audit.Write(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "steward deactivated",
		slog.String("assignment_id", a.ID.String()),
		slog.String("actor_id", actor.ID.String()),
	)
	return a, nil
}

// StartBulkDeactivate validates the request and deactivates the assignments
// in the background, in batches, with per-item isolation.
func (s *Service) StartBulkDeactivate(ctx context.Context, in BulkDeactivateInput) (*batch.Started, error) {
	actor, ids, note, err := s.prepareBulk(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &batch.Started{Summary: batch.Noop(domain.BulkDeactivate)}, nil
	}

	job := s.jobs.Start(ctx, JobKindDeactivation, len(ids), func(jobCtx context.Context, report batch.ProgressFunc) (domain.BulkSummary, error) {
		return s.bulkDeactivate(jobCtx, actor, ids, note, report)
	})

	s.log.InfoContext(ctx, "bulk deactivation started",
		slog.String("job_id", job.ID.String()),
		slog.String("actor_id", actor.ID.String()),
		slog.Int("total", len(ids)),
	)
	return &batch.Started{Job: job}, nil
}

// BulkDeactivate is the synchronous form of StartBulkDeactivate.
func (s *Service) BulkDeactivate(ctx context.Context, in BulkDeactivateInput) (*domain.BulkSummary, error) {
	actor, ids, note, err := s.prepareBulk(ctx, in)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return batch.Noop(domain.BulkDeactivate), nil
	}

	summary, err := s.bulkDeactivate(ctx, actor, ids, note, nil)
	return &summary, err
}

func (s *Service) prepareBulk(ctx context.Context, in BulkDeactivateInput) (domain.Actor, []uuid.UUID, *string, error) {
	actor, err := requireModerator(ctx)
	if err != nil {
		return domain.Actor{}, nil, nil, err
	}
	if err := in.Validate(); err != nil {
		return domain.Actor{}, nil, nil, err
	}
	note, _ := normalizeNote(in.Note)
	return actor, batch.Unique(in.IDs), note, nil
}

func (s *Service) bulkDeactivate(ctx context.Context, actor domain.Actor, ids []uuid.UUID, note *string, report batch.ProgressFunc) (domain.BulkSummary, error) {
	results := batch.Run(ctx, ids, s.batchSize, func(ctx context.Context, id uuid.UUID) error {
		_, err := s.deactivate(ctx, actor, id, note)
		return err
	}, report)

	summary := batch.Summarize(domain.BulkDeactivate, results, s.failedLabels(ctx, results))

	details := map[string]any{
		"total":          summary.Total,
		"succeededCount": summary.Succeeded,
		"failedCount":    summary.Failed,
		"failedIds":      summary.FailedIDs(),
	}
	if note != nil {
		details["note"] = *note
	}
	entry := domain.NewAuditEntry(actor, domain.ActionStewardBulkDeactivationDone, domain.ScopeSteward, nil, "", details)
	if err := s.audit.Write(context.WithoutCancel(ctx), entry); err != nil {
		return summary, fmt.Errorf("audit log: %w", err)
	}

	s.log.InfoContext(ctx, "bulk deactivation finished",
		slog.String("actor_id", actor.ID.String()),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// failedLabels names failed assignments "email on profile" where they can
// still be read. Unreadable ones fall back to their id.
func (s *Service) failedLabels(ctx context.Context, results []batch.Result[uuid.UUID]) map[uuid.UUID]string {
	labels := make(map[uuid.UUID]string)
	ctx = context.WithoutCancel(ctx)
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		a, err := s.assignments.GetByID(ctx, r.Item)
		if err != nil {
			continue
		}
		label := a.StewardEmail
		if a.ProfileLabel != "" {
			label += " on " + a.ProfileLabel
		}
		labels[r.Item] = label
	}
	return labels
}
