package reset

import (
	"context"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ notifier = &notifierMock{}

type notifierMock struct {
	DispatchFunc func(ctx context.Context, n domain.Notification)

	calls struct {
		Dispatch []struct {
			Ctx context.Context
			N   domain.Notification
		}
	}
	lockDispatch sync.RWMutex
}

func (mock *notifierMock) Dispatch(ctx context.Context, n domain.Notification) {
	if mock.DispatchFunc == nil {
		panic("notifierMock.DispatchFunc: method is nil but notifier.Dispatch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockDispatch.Lock()
	mock.calls.Dispatch = append(mock.calls.Dispatch, callInfo)
	mock.lockDispatch.Unlock()
	mock.DispatchFunc(ctx, n)
}

func (mock *notifierMock) DispatchCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockDispatch.RLock()
	calls := mock.calls.Dispatch
	mock.lockDispatch.RUnlock()
	return calls
}
