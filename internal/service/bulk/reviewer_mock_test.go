package bulk

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
	"sync"
)

var _ reviewer = &reviewerMock{}

type reviewerMock struct {
	ApproveProfileFunc func(ctx context.Context, id uuid.UUID) (*review.Outcome, error)

	RequestChangesFunc func(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error)

	calls struct {
		ApproveProfile []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
		RequestChanges []struct {
			Ctx  context.Context
			Id   uuid.UUID
			Note string
		}
	}
	lockApproveProfile        sync.RWMutex
	lockRequestChanges sync.RWMutex
}

func (mock *reviewerMock) ApproveProfile(ctx context.Context, id uuid.UUID) (*review.Outcome, error) {
	if mock.ApproveProfileFunc == nil {
		panic("reviewerMock.ApproveProfileFunc: method is nil but reviewer.ApproveProfile was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  uuid.UUID
	}{Ctx: ctx, Id: id}
	mock.lockApproveProfile.Lock()
	mock.calls.ApproveProfile = append(mock.calls.ApproveProfile, callInfo)
	mock.lockApproveProfile.Unlock()
	return mock.ApproveProfileFunc(ctx, id)
}

func (mock *reviewerMock) ApproveProfileCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockApproveProfile.RLock()
	calls := mock.calls.ApproveProfile
	mock.lockApproveProfile.RUnlock()
	return calls
}

func (mock *reviewerMock) RequestChanges(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error) {
	if mock.RequestChangesFunc == nil {
		panic("reviewerMock.RequestChangesFunc: method is nil but reviewer.RequestChanges was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Id   uuid.UUID
		Note string
	}{Ctx: ctx, Id: id, Note: note}
	mock.lockRequestChanges.Lock()
	mock.calls.RequestChanges = append(mock.calls.RequestChanges, callInfo)
	mock.lockRequestChanges.Unlock()
	return mock.RequestChangesFunc(ctx, id, note)
}

func (mock *reviewerMock) RequestChangesCalls() []struct {
	Ctx  context.Context
	Id   uuid.UUID
	Note string
} {
	mock.lockRequestChanges.RLock()
	calls := mock.calls.RequestChanges
	mock.lockRequestChanges.RUnlock()
	return calls
}
