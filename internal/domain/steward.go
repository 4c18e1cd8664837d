package domain

import (
	"time"

	"github.com/google/uuid"
)

// AssignmentStatus is the lifecycle state of a steward assignment.
type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "active"
	AssignmentInactive AssignmentStatus = "inactive"
)

func (s AssignmentStatus) String() string { return string(s) }

func (s AssignmentStatus) IsValid() bool {
	return s == AssignmentActive || s == AssignmentInactive
}

// StewardAssignment records which steward is responsible for a profile.
// Reactivation always creates a new row.
type StewardAssignment struct {
	ID                 uuid.UUID        `json:"id"`
	ProfileID          uuid.UUID        `json:"profileId"`
	ProfileLabel       string           `json:"profileLabel,omitempty"`
	StewardEmail       string           `json:"stewardEmail"`
	StewardUserID      *uuid.UUID       `json:"stewardUserId,omitempty"`
	StewardName        *string          `json:"stewardName,omitempty"`
	Status             AssignmentStatus `json:"status"`
	AssignedAt         time.Time        `json:"assignedAt"`
	AssignedBy         uuid.UUID        `json:"assignedBy"`
	DeactivatedAt      *time.Time       `json:"deactivatedAt,omitempty"`
	DeactivationNote   *string          `json:"deactivationNote,omitempty"`
	InviteEmailPending bool             `json:"inviteEmailPending"`
}

// DisplayName is the steward name when known, otherwise the email.
func (a StewardAssignment) DisplayName() string {
	if a.StewardName != nil && *a.StewardName != "" {
		return *a.StewardName
	}
	return a.StewardEmail
}

// StewardWorkload is one row of the workload leaderboard.
type StewardWorkload struct {
	StewardEmail      string  `json:"stewardEmail"`
	StewardName       *string `json:"stewardName,omitempty"`
	ActiveAssignments int     `json:"activeAssignments"`
	RecentReviews     int     `json:"recentReviews"`
}
