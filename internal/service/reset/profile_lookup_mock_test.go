package reset

import (
	"context"
	"github.com/google/uuid"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ profileLookup = &profileLookupMock{}

type profileLookupMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)

	calls struct {
		GetByID []struct {
			Ctx context.Context
			Id  uuid.UUID
		}
	}
	lockGetByID sync.RWMutex
}

func (mock *profileLookupMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error) {
	if mock.GetByIDFunc == nil {
		panic("profileLookupMock.GetByIDFunc: method is nil but profileLookup.GetByID was just called")
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

func (mock *profileLookupMock) GetByIDCalls() []struct {
	Ctx context.Context
	Id  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}
