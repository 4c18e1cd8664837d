package notify

import (
	"context"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ failureRecorder = &failureRecorderMock{}

type failureRecorderMock struct {
	RecordFunc func(ctx context.Context, f domain.NotificationFailure) error

	calls struct {
		Record []struct {
			Ctx context.Context
			F   domain.NotificationFailure
		}
	}
	lockRecord sync.RWMutex
}

func (mock *failureRecorderMock) Record(ctx context.Context, f domain.NotificationFailure) error {
	if mock.RecordFunc == nil {
		panic("failureRecorderMock.RecordFunc: method is nil but failureRecorder.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.NotificationFailure
	}{Ctx: ctx, F: f}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, f)
}

func (mock *failureRecorderMock) RecordCalls() []struct {
	Ctx context.Context
	F   domain.NotificationFailure
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
