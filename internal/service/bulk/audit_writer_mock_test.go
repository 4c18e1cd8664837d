package bulk

import (
	"context"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
)

var _ auditWriter = &auditWriterMock{}

type auditWriterMock struct {
	WriteFunc func(ctx context.Context, e domain.AuditEntry) error

	calls struct {
		Write []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
	}
	lockWrite sync.RWMutex
}

func (mock *auditWriterMock) Write(ctx context.Context, e domain.AuditEntry) error {
	if mock.WriteFunc == nil {
		panic("auditWriterMock.WriteFunc: method is nil but auditWriter.Write was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockWrite.Lock()
	mock.calls.Write = append(mock.calls.Write, callInfo)
	mock.lockWrite.Unlock()
	return mock.WriteFunc(ctx, e)
}

func (mock *auditWriterMock) WriteCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockWrite.RLock()
	calls := mock.calls.Write
	mock.lockWrite.RUnlock()
	return calls
}
