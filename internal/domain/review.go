package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemKind discriminates the reviewable item variants.
type ItemKind string

const (
	ItemKindProfile      ItemKind = "profile"
	ItemKindCommendation ItemKind = "commendation"
	ItemKindContribution ItemKind = "contribution"
)

func (k ItemKind) String() string { return string(k) }

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindProfile, ItemKindCommendation, ItemKindContribution:
		return true
	}
	return false
}

// ReviewStatus is the moderation status of a reviewable item.
type ReviewStatus string

const (
	StatusDraft              ReviewStatus = "draft"
	StatusSubmittedForReview ReviewStatus = "submitted_for_review"
	StatusApproved           ReviewStatus = "approved"
	StatusNeedsChanges       ReviewStatus = "needs_changes"
	StatusRejected           ReviewStatus = "rejected"
	StatusArchived           ReviewStatus = "archived"
)

func (s ReviewStatus) String() string { return string(s) }

// ReviewVerb names a state machine operation.
type ReviewVerb string

const (
	VerbSubmit         ReviewVerb = "submit"
	VerbResubmit       ReviewVerb = "resubmit"
	VerbApprove        ReviewVerb = "approve"
	VerbRequestChanges ReviewVerb = "request_changes"
	VerbReject         ReviewVerb = "reject"
	VerbWithdraw       ReviewVerb = "withdraw"
)

func (v ReviewVerb) String() string { return string(v) }

// PastTense returns the form used in audit action types.
func (v ReviewVerb) PastTense() string {
	switch v {
	case VerbSubmit:
		return "submitted"
	case VerbResubmit:
		return "resubmitted"
	case VerbApprove:
		return "approved"
	case VerbRequestChanges:
		return "changes_requested"
	case VerbReject:
		return "rejected"
	case VerbWithdraw:
		return "withdrawn"
	}
	return string(v)
}

// RequiresModerator reports whether only stewards and admins may apply the verb.
// The remaining verbs belong to the item owner.
func (v ReviewVerb) RequiresModerator() bool {
	switch v {
	case VerbApprove, VerbRequestChanges, VerbReject:
		return true
	}
	return false
}

var kindStatuses = map[ItemKind][]ReviewStatus{
	ItemKindProfile:      {StatusDraft, StatusSubmittedForReview, StatusApproved, StatusNeedsChanges},
	ItemKindCommendation: {StatusSubmittedForReview, StatusApproved, StatusRejected, StatusArchived},
	ItemKindContribution: {StatusDraft, StatusSubmittedForReview, StatusApproved, StatusRejected},
}

type transitionKey struct {
	kind ItemKind
	verb ReviewVerb
	from ReviewStatus
}

// transitions is the complete review state machine. Safe Reset moves items
// outside of it and is the only other writer of status.
var transitions = map[transitionKey]ReviewStatus{
	{ItemKindProfile, VerbSubmit, StatusDraft}:                      StatusSubmittedForReview,
	{ItemKindProfile, VerbResubmit, StatusNeedsChanges}:             StatusSubmittedForReview,
	{ItemKindProfile, VerbApprove, StatusSubmittedForReview}:        StatusApproved,
	{ItemKindProfile, VerbRequestChanges, StatusSubmittedForReview}: StatusNeedsChanges,
	{ItemKindProfile, VerbWithdraw, StatusSubmittedForReview}:       StatusDraft,
	{ItemKindCommendation, VerbApprove, StatusSubmittedForReview}:   StatusApproved,
	{ItemKindCommendation, VerbReject, StatusSubmittedForReview}:    StatusRejected,
	{ItemKindContribution, VerbSubmit, StatusDraft}:                 StatusSubmittedForReview,
	{ItemKindContribution, VerbApprove, StatusSubmittedForReview}:   StatusApproved,
	{ItemKindContribution, VerbReject, StatusSubmittedForReview}:    StatusRejected,
	{ItemKindContribution, VerbWithdraw, StatusSubmittedForReview}:  StatusDraft,
}

// Transition returns the status reached by applying verb to an item of kind
// in status from. Any combination outside the table fails with a
// *TransitionError.
func Transition(kind ItemKind, verb ReviewVerb, from ReviewStatus) (ReviewStatus, error) {
	to, ok := transitions[transitionKey{kind, verb, from}]
	if !ok {
		return "", &TransitionError{Kind: kind, Verb: verb, From: from}
	}
	return to, nil
}

// HasStatus reports whether status belongs to the declared set of kind.
func HasStatus(kind ItemKind, status ReviewStatus) bool {
	for _, s := range kindStatuses[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// ReviewableItem is a profile, commendation or contribution under moderation.
type ReviewableItem struct {
	ID           uuid.UUID      `json:"id"`
	Kind         ItemKind       `json:"kind"`
	ProfileID    uuid.UUID      `json:"profileId"`
	OwnerID      uuid.UUID      `json:"ownerId"`
	OwnerEmail   string         `json:"ownerEmail"`
	Label        string         `json:"label"`
	Status       ReviewStatus   `json:"status"`
	Content      map[string]any `json:"content"`
	CreatedAt    time.Time      `json:"createdAt"`
	SubmittedAt  *time.Time     `json:"submittedAt,omitempty"`
	ReviewedAt   *time.Time     `json:"reviewedAt,omitempty"`
	ReviewedBy   *uuid.UUID     `json:"reviewedBy,omitempty"`
	StewardNote  *string        `json:"stewardNote,omitempty"`
	RejectReason *string        `json:"rejectReason,omitempty"`
}

// DisplayLabel returns the label, falling back to the id.
func (i ReviewableItem) DisplayLabel() string {
	if i.Label != "" {
		return i.Label
	}
	return i.ID.String()
}

// StatusChange is a compare-and-set status update. It applies only while the
// stored status still equals From.
type StatusChange struct {
	ID           uuid.UUID
	From         ReviewStatus
	To           ReviewStatus
	At           time.Time
	ReviewedBy   *uuid.UUID
	StewardNote  *string
	RejectReason *string
	Submitted    bool
}

// Notification is an opaque payload handed to the notification sender.
type Notification struct {
	Kind        string            `json:"kind"`
	RecipientID uuid.UUID         `json:"recipientId"`
	Recipient   string            `json:"recipient"`
	Variables   map[string]string `json:"variables"`
}

// NotificationFailure is the diagnostic record of a failed send.
type NotificationFailure struct {
	ID           uuid.UUID
	Notification Notification
	Error        string
	CreatedAt    time.Time
}
