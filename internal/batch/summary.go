package batch

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/domain"
)

// Unique drops repeated ids, keeping the first occurrence.
func Unique(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Summarize folds per-item results into a summary. labels supplies display
// names; ids without a label fall back to their string form.
func Summarize(decision domain.BulkDecision, results []Result[uuid.UUID], labels map[uuid.UUID]string) domain.BulkSummary {
	s := domain.BulkSummary{
		Decision:    decision,
		Total:       len(results),
		FailedItems: []domain.BulkFailure{},
	}

	for _, r := range results {
		if r.Err == nil {
			s.Succeeded++
			continue
		}
		label := labels[r.Item]
		if label == "" {
			label = r.Item.String()
		}
		s.FailedItems = append(s.FailedItems, domain.BulkFailure{ID: r.Item, Label: label, Reason: r.Err.Error()})
	}
	s.Failed = len(s.FailedItems)
	s.FailedItemLabels = s.FailedLabels()
	s.Message = domain.BulkMessage(s.Succeeded, s.Total, s.FailedItemLabels)
	return s
}

// Noop is the summary of an empty selection.
func Noop(decision domain.BulkDecision) *domain.BulkSummary {
	return &domain.BulkSummary{
		Decision:         decision,
		FailedItemLabels: []string{},
		FailedItems:      []domain.BulkFailure{},
		Message:          domain.BulkMessage(0, 0, nil),
	}
}
