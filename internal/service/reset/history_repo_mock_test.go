package reset

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	AppendFunc func(ctx context.Context, e domain.ResetHistoryEntry) error

	ListByProfileFunc func(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.ResetHistoryEntry
		}
		ListByProfile []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
			Limit     int
		}
	}
	lockAppend        sync.RWMutex
	lockListByProfile sync.RWMutex
}

func (mock *historyRepoMock) Append(ctx context.Context, e domain.ResetHistoryEntry) error {
	if mock.AppendFunc == nil {
		panic("historyRepoMock.AppendFunc: method is nil but historyRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.ResetHistoryEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *historyRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.ResetHistoryEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error) {
	if mock.ListByProfileFunc == nil {
		panic("historyRepoMock.ListByProfileFunc: method is nil but historyRepo.ListByProfile was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
		Limit     int
	}{Ctx: ctx, ProfileID: profileID, Limit: limit}
	mock.lockListByProfile.Lock()
	mock.calls.ListByProfile = append(mock.calls.ListByProfile, callInfo)
	mock.lockListByProfile.Unlock()
	return mock.ListByProfileFunc(ctx, profileID, limit)
}

func (mock *historyRepoMock) ListByProfileCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
	Limit     int
} {
	mock.lockListByProfile.RLock()
	calls := mock.calls.ListByProfile
	mock.lockListByProfile.RUnlock()
	return calls
}
