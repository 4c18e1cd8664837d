package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Approve moves a submitted item to approved. Stewards and admins only.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	return s.apply(ctx, id, domain.VerbApprove, decision{})
}

// ApproveProfile is Approve restricted to profiles. Any other kind fails
// with a TransitionError and is left untouched.
func (s *Service) ApproveProfile(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	profile := domain.ItemKindProfile
	return s.apply(ctx, id, domain.VerbApprove, decision{onlyKind: &profile})
}

// RequestChanges sends a submitted profile back to its owner with a note.
func (s *Service) RequestChanges(ctx context.Context, id uuid.UUID, note string) (*Outcome, error) {
	note, err := validateNote(note)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, domain.VerbRequestChanges, decision{note: &note})
}

// Reject declines a submitted commendation or contribution. reason is optional.
func (s *Service) Reject(ctx context.Context, id uuid.UUID, reason *string) (*Outcome, error) {
	reason, err := validateReason(reason)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, id, domain.VerbReject, decision{reason: reason})
}

// Withdraw returns the owner's submitted item to draft.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	return s.apply(ctx, id, domain.VerbWithdraw, decision{})
}

// Submit sends the owner's draft for review. A profile in needs_changes is
// resubmitted.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Outcome, error) {
	return s.apply(ctx, id, domain.VerbSubmit, decision{})
}

type decision struct {
	note     *string
	reason   *string
	onlyKind *domain.ItemKind
}

func (s *Service) apply(ctx context.Context, id uuid.UUID, verb domain.ReviewVerb, d decision) (*Outcome, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if verb.RequiresModerator() && !actor.CanModerate() {
		return nil, domain.ErrForbidden
	}

	var (
		out  Outcome
		from domain.ReviewStatus
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		item, err := s.items.GetForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if !verb.RequiresModerator() && item.OwnerID != actor.ID {
			return domain.ErrForbidden
		}
		if d.onlyKind != nil && item.Kind != *d.onlyKind {
			return &domain.TransitionError{Kind: item.Kind, Verb: verb, From: item.Status, Reason: "only " + string(*d.onlyKind) + " items accepted"}
		}
		if verb == domain.VerbSubmit && item.Kind == domain.ItemKindProfile && item.Status == domain.StatusNeedsChanges {
			verb = domain.VerbResubmit
		}

		to, err := domain.Transition(item.Kind, verb, item.Status)
		if err != nil {
			return err
		}
		from = item.Status

		change := domain.StatusChange{
			ID:           item.ID,
			From:         item.Status,
			To:           to,
			At:           s.now(),
			StewardNote:  d.note,
			RejectReason: d.reason,
			Submitted:    verb == domain.VerbSubmit || verb == domain.VerbResubmit,
		}
		if verb.RequiresModerator() {
			change.ReviewedBy = &actor.ID
		}

		updated, err := s.items.UpdateStatus(txCtx, change)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.TransitionError{Kind: item.Kind, Verb: verb, From: item.Status, Reason: "status changed concurrently"}
		}
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}

		details := map[string]any{"from": string(from), "to": string(to)}
		if d.note != nil {
			details["note"] = *d.note
		}
		if d.reason != nil {
			details["reason"] = *d.reason
		}
		entry := domain.NewAuditEntry(actor, domain.ReviewActionType(item.Kind, verb),
			domain.ScopeForKind(item.Kind), &item.ID, item.DisplayLabel(), details)
		if err := s.audit.Write(txCtx, entry); err != nil {
			return fmt.Errorf("audit log: %w", err)
		}

		out = Outcome{Item: updated, Notification: notificationFor(updated, verb, d)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "item reviewed",
		slog.String("actor_id", actor.ID.String()),
		slog.String("item_id", id.String()),
		slog.String("kind", string(out.Item.Kind)),
		slog.String("verb", string(verb)),
		slog.String("from", string(from)),
		slog.String("to", string(out.Item.Status)),
	)

	return &out, nil
}

func notificationFor(item *domain.ReviewableItem, verb domain.ReviewVerb, d decision) domain.Notification {
	vars := map[string]string{
		"label":  item.DisplayLabel(),
		"kind":   string(item.Kind),
		"status": string(item.Status),
	}
	if d.note != nil {
		vars["note"] = *d.note
	}
	if d.reason != nil {
		vars["reason"] = *d.reason
	}
	return domain.Notification{
		Kind:        "review." + verb.PastTense(),
		RecipientID: item.OwnerID,
		Recipient:   item.OwnerEmail,
		Variables:   vars,
	}
}
