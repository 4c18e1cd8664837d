package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BulkDecision is the review decision applied by a bulk run.
type BulkDecision string

const (
	BulkApprove        BulkDecision = "approve"
	BulkRequestChanges BulkDecision = "request_changes"
	BulkDeactivate     BulkDecision = "deactivate"
)

func (d BulkDecision) String() string { return string(d) }

// BulkProgress is the live counter of a running bulk job.
type BulkProgress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// BulkFailure names one item a bulk run could not apply.
type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Label  string    `json:"label"`
	Reason string    `json:"reason"`
}

// BulkSummary is the folded outcome of a bulk run.
type BulkSummary struct {
	Decision         BulkDecision  `json:"decision"`
	Total            int           `json:"total"`
	Succeeded        int           `json:"succeededCount"`
	Failed           int           `json:"failedCount"`
	FailedItemLabels []string      `json:"failedItemLabels"`
	FailedItems      []BulkFailure `json:"failedItems"`
	Message          string        `json:"message"`
}

// FailedLabels lists the display labels of the failed items in input order.
func (s BulkSummary) FailedLabels() []string {
	labels := make([]string, len(s.FailedItems))
	for i, f := range s.FailedItems {
		labels[i] = f.Label
	}
	return labels
}

// FailedIDs lists the ids of the failed items in input order.
func (s BulkSummary) FailedIDs() []string {
	ids := make([]string, len(s.FailedItems))
	for i, f := range s.FailedItems {
		ids[i] = f.ID.String()
	}
	return ids
}

// BulkMessage renders the "succeeded 8 of 10, failed: X, Y" line.
func BulkMessage(succeeded, total int, failedLabels []string) string {
	msg := fmt.Sprintf("succeeded %d of %d", succeeded, total)
	if len(failedLabels) > 0 {
		msg += ", failed: " + strings.Join(failedLabels, ", ")
	}
	return msg
}
