package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action types written outside the review state machine. Review
// transitions use "<kind>.<past tense verb>", see ReviewActionType.
const (
	ActionBulkReviewExecuted          = "profile.bulk_review_executed"
	ActionAuditExported               = "audit.exported"
	ActionAuditRetentionCleanup       = "audit.retention_cleanup"
	ActionStewardAssigned             = "steward.assigned"
	ActionStewardDeactivated          = "steward.deactivated"
	ActionStewardBulkDeactivationDone = "steward.bulk_deactivation_executed"
	ActionProfileResetSoft            = "profile.reset_soft"
	ActionProfileResetHard            = "profile.reset_hard"
	ActionProfileResetPartial         = "profile.reset_partial"
)

// ReviewActionType returns the audit action type of a review transition.
func ReviewActionType(kind ItemKind, verb ReviewVerb) string {
	return string(kind) + "." + verb.PastTense()
}

// ScopeType classifies the target of an audit entry.
type ScopeType string

const (
	ScopeProfile      ScopeType = "profile"
	ScopeCommendation ScopeType = "commendation"
	ScopeContribution ScopeType = "contribution"
	ScopeContact      ScopeType = "contact"
	ScopeSteward      ScopeType = "steward"
	ScopeSystem       ScopeType = "system"
)

func (s ScopeType) String() string { return string(s) }

func (s ScopeType) IsValid() bool {
	switch s {
	case ScopeProfile, ScopeCommendation, ScopeContribution, ScopeContact, ScopeSteward, ScopeSystem:
		return true
	}
	return false
}

// ScopeForKind maps a reviewable item kind to its audit scope.
func ScopeForKind(kind ItemKind) ScopeType {
	switch kind {
	case ItemKindCommendation:
		return ScopeCommendation
	case ItemKindContribution:
		return ScopeContribution
	}
	return ScopeProfile
}

// AuditEntry is one immutable audit log record.
type AuditEntry struct {
	ID          uuid.UUID      `json:"id"`
	ActionType  string         `json:"actionType"`
	ActorID     uuid.UUID      `json:"actorId"`
	ActorEmail  string         `json:"actorEmail"`
	ScopeType   ScopeType      `json:"scopeType"`
	TargetID    *uuid.UUID     `json:"targetId,omitempty"`
	TargetLabel *string        `json:"targetLabel,omitempty"`
	Details     map[string]any `json:"details"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewAuditEntry stamps a new entry attributed to actor.
func NewAuditEntry(actor Actor, actionType string, scope ScopeType, targetID *uuid.UUID, targetLabel string, details map[string]any) AuditEntry {
	e := AuditEntry{
		ID:         uuid.New(),
		ActionType: actionType,
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		ScopeType:  scope,
		TargetID:   targetID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if targetLabel != "" {
		e.TargetLabel = &targetLabel
	}
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	return e
}

// AuditSortKey is a column audit queries may be ordered by.
type AuditSortKey string

const (
	AuditSortCreatedAt  AuditSortKey = "created_at"
	AuditSortActionType AuditSortKey = "action_type"
	AuditSortActorEmail AuditSortKey = "actor_email"
	AuditSortScopeType  AuditSortKey = "scope_type"
)

func (k AuditSortKey) IsValid() bool {
	switch k {
	case AuditSortCreatedAt, AuditSortActionType, AuditSortActorEmail, AuditSortScopeType:
		return true
	}
	return false
}

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) IsValid() bool { return d == SortAsc || d == SortDesc }

// AuditFilter selects audit entries. Empty fields do not filter. DateFrom and
// DateTo are calendar days, both inclusive.
type AuditFilter struct {
	ActionType string
	ScopeType  ScopeType
	ActorEmail string
	Search     string
	DateFrom   *time.Time
	DateTo     *time.Time
	SortBy     AuditSortKey
	SortDir    SortDirection
	Limit      int
	Offset     int
}

// AuditPage is one page of a filtered audit query.
type AuditPage struct {
	Entries []AuditEntry `json:"entries"`
	Total   int          `json:"total"`
}

// ActorActivity is the number of review actions an actor performed in a window.
type ActorActivity map[string]int
