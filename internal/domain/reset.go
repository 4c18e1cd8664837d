package domain

import (
	"time"

	"github.com/google/uuid"
)

// ResetConfirmationPhrase must be typed exactly to execute a Safe Reset.
const ResetConfirmationPhrase = "RESET THIS PROFILE"

// MaxResetReasonNote is the longest accepted reason note, in characters.
const MaxResetReasonNote = 240

// ResetMode selects between recoverable and irreversible reset.
type ResetMode string

const (
	ResetSoft ResetMode = "soft"
	ResetHard ResetMode = "hard"
)

func (m ResetMode) String() string { return string(m) }

func (m ResetMode) IsValid() bool { return m == ResetSoft || m == ResetHard }

// ResetReason is the closed set of reasons a reset may be requested for.
type ResetReason string

const (
	ResetReasonTestCleanup      ResetReason = "test_cleanup"
	ResetReasonReOnboarding     ResetReason = "re_onboarding"
	ResetReasonOwnerRequest     ResetReason = "owner_request"
	ResetReasonContentPolicy    ResetReason = "content_policy"
	ResetReasonDuplicateProfile ResetReason = "duplicate_profile"
	ResetReasonOther            ResetReason = "other"
)

func (r ResetReason) String() string { return string(r) }

func (r ResetReason) IsValid() bool {
	switch r {
	case ResetReasonTestCleanup, ResetReasonReOnboarding, ResetReasonOwnerRequest,
		ResetReasonContentPolicy, ResetReasonDuplicateProfile, ResetReasonOther:
		return true
	}
	return false
}

// ResetOutcome tells a full reset from one that stopped midway.
type ResetOutcome string

const (
	ResetCompleted ResetOutcome = "completed"
	ResetPartial   ResetOutcome = "partial"
)

// Reset cascade steps, in execution order.
const (
	ResetStepArchiveItems  = "archive_items"
	ResetStepCommendations = "commendations"
	ResetStepMilestones    = "milestones"
	ResetStepProfile       = "profile"
)

// ResetCounts are the per-category rows affected by a reset.
type ResetCounts struct {
	ArchiveItems  int `json:"archiveItemsAffected"`
	Commendations int `json:"commendationsAffected"`
	Milestones    int `json:"milestonesAffected"`
	CleanupQueued int `json:"cleanupQueueCount"`
}

// ResetResult describes what a reset did.
type ResetResult struct {
	ResetID        uuid.UUID    `json:"resetId"`
	ProfileID      uuid.UUID    `json:"profileId"`
	Mode           ResetMode    `json:"mode"`
	ResetAt        time.Time    `json:"resetAt"`
	Counts         ResetCounts  `json:"counts"`
	Outcome        ResetOutcome `json:"outcome"`
	CompletedSteps []string     `json:"completedSteps"`
	FailedStep     string       `json:"failedStep,omitempty"`
}

// ResetHistoryEntry is the append-only record of one reset.
type ResetHistoryEntry struct {
	ID               uuid.UUID    `json:"id"`
	ProfileID        uuid.UUID    `json:"profileId"`
	Mode             ResetMode    `json:"mode"`
	RequestedByID    uuid.UUID    `json:"requestedById"`
	RequestedByEmail string       `json:"requestedByEmail"`
	ReasonCode       ResetReason  `json:"reasonCode"`
	ReasonNote       *string      `json:"reasonNote,omitempty"`
	Counts           ResetCounts  `json:"counts"`
	Outcome          ResetOutcome `json:"outcome"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// ResetReadiness is the independent state of each reset precondition.
type ResetReadiness struct {
	ProfileSelected     bool     `json:"profileSelected"`
	ReasonValid         bool     `json:"reasonValid"`
	ConfirmationMatched bool     `json:"confirmationMatched"`
	Ready               bool     `json:"ready"`
	Missing             []string `json:"missing"`
}

// Milestone is a dated entry on a journey timeline.
type Milestone struct {
	ID         uuid.UUID `json:"id"`
	ProfileID  uuid.UUID `json:"profileId"`
	Title      string    `json:"title"`
	OccurredOn time.Time `json:"occurredOn"`
}

// ArchiveStatus is the visibility of an archive item.
type ArchiveStatus string

const (
	ArchiveVisible  ArchiveStatus = "visible"
	ArchiveArchived ArchiveStatus = "archived"
)

// ArchiveItem is a media or text item in a profile's archive.
type ArchiveItem struct {
	ID          uuid.UUID     `json:"id"`
	ProfileID   uuid.UUID     `json:"profileId"`
	Title       string        `json:"title"`
	StoragePath *string       `json:"storagePath,omitempty"`
	Status      ArchiveStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
}
