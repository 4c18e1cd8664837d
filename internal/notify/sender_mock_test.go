package notify

import (
	"context"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ Sender = &SenderMock{}

type SenderMock struct {
	SendFunc func(ctx context.Context, n domain.Notification) error

	calls struct {
		Send []struct {
			Ctx context.Context
			N   domain.Notification
		}
	}
	lockSend sync.RWMutex
}

func (mock *SenderMock) Send(ctx context.Context, n domain.Notification) error {
	if mock.SendFunc == nil {
		panic("SenderMock.SendFunc: method is nil but Sender.Send was just called")
	}
	callInfo := struct {
		Ctx context.Context
		N   domain.Notification
	}{Ctx: ctx, N: n}
	mock.lockSend.Lock()
	mock.calls.Send = append(mock.calls.Send, callInfo)
	mock.lockSend.Unlock()
	return mock.SendFunc(ctx, n)
}

func (mock *SenderMock) SendCalls() []struct {
	Ctx context.Context
	N   domain.Notification
} {
	mock.lockSend.RLock()
	calls := mock.calls.Send
	mock.lockSend.RUnlock()
	return calls
}
