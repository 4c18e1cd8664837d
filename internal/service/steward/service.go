// Package steward manages which steward looks after which profile: the
// assignment lifecycle, bulk deactivation and the workload leaderboard.
package steward

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

type assignmentRepo interface {
	Create(ctx context.Context, a domain.StewardAssignment) (*domain.StewardAssignment, error)
	Deactivate(ctx context.Context, id uuid.UUID, at time.Time, note *string) (*domain.StewardAssignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StewardAssignment, error)
	HasActive(ctx context.Context, profileID uuid.UUID, email string) (bool, error)
	ListByProfile(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error)
	ActiveCounts(ctx context.Context) ([]domain.StewardWorkload, error)
}

type profileLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
}

type userLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.UserAccount, error)
}

type activitySource interface {
	ActivitySince(ctx context.Context, since time.Time) (domain.ActorActivity, error)
}

type auditWriter interface {
	Write(ctx context.Context, e domain.AuditEntry) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type jobStarter interface {
	Start(ctx context.Context, kind string, total int, fn batch.JobFunc) *batch.Job
}

// JobKindDeactivation identifies bulk deactivation jobs in the registry.
const JobKindDeactivation = "steward_deactivation"

// DefaultWorkloadWindow is the activity window of the workload report.
const DefaultWorkloadWindow = 30 * 24 * time.Hour

// Service provides steward assignment operations.
type Service struct {
	assignments assignmentRepo
	profiles    profileLookup
	users       userLookup
	activity    activitySource
	audit       auditWriter
	tx          txManager
	jobs        jobStarter
	batchSize   int
	log         *slog.Logger
	now         func() time.Time
}

// Deps groups the collaborators of the service.
type Deps struct {
	Assignments assignmentRepo
	Profiles    profileLookup
	Users       userLookup
	Activity    activitySource
	Audit       auditWriter
	Tx          txManager
	Jobs        jobStarter
}

// NewService creates a new steward service.
func NewService(log *slog.Logger, deps Deps, batchSize int) *Service {
	if batchSize < 1 {
		batchSize = batch.DefaultSize
	}
	return &Service{
		assignments: deps.Assignments,
		profiles:    deps.Profiles,
		users:       deps.Users,
		activity:    deps.Activity,
		audit:       deps.Audit,
		tx:          deps.Tx,
		jobs:        deps.Jobs,
		batchSize:   batchSize,
		log:         log.With("service", "steward"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func requireModerator(ctx context.Context) (domain.Actor, error) {
	actor, err := domain.ActorFromCtx(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if !actor.CanModerate() {
		return domain.Actor{}, domain.ErrForbidden
	}
	return actor, nil
}
