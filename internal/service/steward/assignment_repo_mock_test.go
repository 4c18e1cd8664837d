package steward

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
	"time"
)

var _ assignmentRepo = &assignmentRepoMock{}

type assignmentRepoMock struct {
	ActiveCountsFunc func(ctx context.Context) ([]domain.StewardWorkload, error)

	CreateFunc func(ctx context.Context, a domain.StewardAssignment) (*domain.StewardAssignment, error)

	DeactivateFunc func(ctx context.Context, id uuid.UUID, at time.Time, note *string) (*domain.StewardAssignment, error)

	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.StewardAssignment, error)

	HasActiveFunc func(ctx context.Context, profileID uuid.UUID, email string) (bool, error)

	ListByProfileFunc func(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error)

	calls struct {
		ActiveCounts []struct {
			Ctx context.Context
		}
		Create []struct {
			Ctx context.Context
			A   domain.StewardAssignment
		}
		Deactivate []struct {
			Ctx  context.Context
			Id   uuid.UUID
			At   time.Time
			Note *string
		}
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		HasActive []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
			Email     string
		}
		ListByProfile []struct {
			Ctx             context.Context
			ProfileID       uuid.UUID
			IncludeInactive bool
		}
	}
	lockActiveCounts  sync.RWMutex
	lockCreate        sync.RWMutex
	lockDeactivate    sync.RWMutex
	lockGetByID       sync.RWMutex
	lockHasActive     sync.RWMutex
	lockListByProfile sync.RWMutex
}

func (mock *assignmentRepoMock) ActiveCounts(ctx context.Context) ([]domain.StewardWorkload, error) {
	if mock.ActiveCountsFunc == nil {
		panic("assignmentRepoMock.ActiveCountsFunc: method is nil but assignmentRepo.ActiveCounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockActiveCounts.Lock()
	mock.calls.ActiveCounts = append(mock.calls.ActiveCounts, callInfo)
	mock.lockActiveCounts.Unlock()
	return mock.ActiveCountsFunc(ctx)
}

func (mock *assignmentRepoMock) ActiveCountsCalls() []struct {
	Ctx context.Context
} {
	mock.lockActiveCounts.RLock()
	calls := mock.calls.ActiveCounts
	mock.lockActiveCounts.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) Create(ctx context.Context, a domain.StewardAssignment) (*domain.StewardAssignment, error) {
	if mock.CreateFunc == nil {
		panic("assignmentRepoMock.CreateFunc: method is nil but assignmentRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   domain.StewardAssignment
	}{Ctx: ctx, A: a}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *assignmentRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   domain.StewardAssignment
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) Deactivate(ctx context.Context, id uuid.UUID, at time.Time, note *string) (*domain.StewardAssignment, error) {
	if mock.DeactivateFunc == nil {
		panic("assignmentRepoMock.DeactivateFunc: method is nil but assignmentRepo.Deactivate was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Id   uuid.UUID
		At   time.Time
		Note *string
	}{Ctx: ctx, Id: id, At: at, Note: note}
	mock.lockDeactivate.Lock()
	mock.calls.Deactivate = append(mock.calls.Deactivate, callInfo)
	mock.lockDeactivate.Unlock()
	return mock.DeactivateFunc(ctx, id, at, note)
}

func (mock *assignmentRepoMock) DeactivateCalls() []struct {
	Ctx  context.Context
	Id   uuid.UUID
	At   time.Time
	Note *string
} {
	mock.lockDeactivate.RLock()
	calls := mock.calls.Deactivate
	mock.lockDeactivate.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.StewardAssignment, error) {
	if mock.GetByIDFunc == nil {
		panic("assignmentRepoMock.GetByIDFunc: method is nil but assignmentRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *assignmentRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) HasActive(ctx context.Context, profileID uuid.UUID, email string) (bool, error) {
	if mock.HasActiveFunc == nil {
		panic("assignmentRepoMock.HasActiveFunc: method is nil but assignmentRepo.HasActive was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
		Email     string
	}{Ctx: ctx, ProfileID: profileID, Email: email}
	mock.lockHasActive.Lock()
	mock.calls.HasActive = append(mock.calls.HasActive, callInfo)
	mock.lockHasActive.Unlock()
	return mock.HasActiveFunc(ctx, profileID, email)
}

func (mock *assignmentRepoMock) HasActiveCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
	Email     string
} {
	mock.lockHasActive.RLock()
	calls := mock.calls.HasActive
	mock.lockHasActive.RUnlock()
	return calls
}

func (mock *assignmentRepoMock) ListByProfile(ctx context.Context, profileID uuid.UUID, includeInactive bool) ([]domain.StewardAssignment, error) {
	if mock.ListByProfileFunc == nil {
		panic("assignmentRepoMock.ListByProfileFunc: method is nil but assignmentRepo.ListByProfile was just called")
	}
	callInfo := struct {
		Ctx             context.Context
		ProfileID       uuid.UUID
		IncludeInactive bool
	}{Ctx: ctx, ProfileID: profileID, IncludeInactive: includeInactive}
	mock.lockListByProfile.Lock()
	mock.calls.ListByProfile = append(mock.calls.ListByProfile, callInfo)
	mock.lockListByProfile.Unlock()
	return mock.ListByProfileFunc(ctx, profileID, includeInactive)
}

func (mock *assignmentRepoMock) ListByProfileCalls() []struct {
	Ctx             context.Context
	ProfileID       uuid.UUID
	IncludeInactive bool
} {
	mock.lockListByProfile.RLock()
	calls := mock.calls.ListByProfile
	mock.lockListByProfile.RUnlock()
	return calls
}
