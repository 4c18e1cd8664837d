package audit

import (
	"context"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"sync"
	"time"
)

var _ auditRepo = &auditRepoMock{}

type auditRepoMock struct {
	AppendFunc func(ctx context.Context, e domain.AuditEntry) error

	QueryFunc func(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error)

	CountFunc func(ctx context.Context, f domain.AuditFilter) (int, error)

	CountAllFunc func(ctx context.Context) (int, error)

	DeleteOlderThanFunc func(ctx context.Context, cutoff time.Time) (int, error)

	ActivityByActorFunc func(ctx context.Context, since time.Time, actionTypes []string) (domain.ActorActivity, error)

	calls struct {
		Append []struct {
			Ctx context.Context
			E   domain.AuditEntry
		}
		Query []struct {
			Ctx context.Context
			F   domain.AuditFilter
		}
		Count []struct {
			Ctx context.Context
			F   domain.AuditFilter
		}
		CountAll []struct {
			Ctx context.Context
		}
		DeleteOlderThan []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		ActivityByActor []struct {
			Ctx         context.Context
			Since       time.Time
			ActionTypes []string
		}
	}
	lockAppend          sync.RWMutex
	lockQuery           sync.RWMutex
	lockCount           sync.RWMutex
	lockCountAll        sync.RWMutex
	lockDeleteOlderThan sync.RWMutex
	lockActivityByActor sync.RWMutex
}

func (mock *auditRepoMock) Append(ctx context.Context, e domain.AuditEntry) error {
	if mock.AppendFunc == nil {
		panic("auditRepoMock.AppendFunc: method is nil but auditRepo.Append was just called")
	}
	callInfo := struct {
		Ctx context.Context
		E   domain.AuditEntry
	}{Ctx: ctx, E: e}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, e)
}

func (mock *auditRepoMock) AppendCalls() []struct {
	Ctx context.Context
	E   domain.AuditEntry
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}

func (mock *auditRepoMock) Query(ctx context.Context, f domain.AuditFilter) ([]domain.AuditEntry, error) {
	if mock.QueryFunc == nil {
		panic("auditRepoMock.QueryFunc: method is nil but auditRepo.Query was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.AuditFilter
	}{Ctx: ctx, F: f}
	mock.lockQuery.Lock()
	mock.calls.Query = append(mock.calls.Query, callInfo)
	mock.lockQuery.Unlock()
	return mock.QueryFunc(ctx, f)
}

func (mock *auditRepoMock) QueryCalls() []struct {
	Ctx context.Context
	F   domain.AuditFilter
} {
	mock.lockQuery.RLock()
	calls := mock.calls.Query
	mock.lockQuery.RUnlock()
	return calls
}

func (mock *auditRepoMock) Count(ctx context.Context, f domain.AuditFilter) (int, error) {
	if mock.CountFunc == nil {
		panic("auditRepoMock.CountFunc: method is nil but auditRepo.Count was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.AuditFilter
	}{Ctx: ctx, F: f}
	mock.lockCount.Lock()
	mock.calls.Count = append(mock.calls.Count, callInfo)
	mock.lockCount.Unlock()
	return mock.CountFunc(ctx, f)
}

func (mock *auditRepoMock) CountCalls() []struct {
	Ctx context.Context
	F   domain.AuditFilter
} {
	mock.lockCount.RLock()
	calls := mock.calls.Count
	mock.lockCount.RUnlock()
	return calls
}

func (mock *auditRepoMock) CountAll(ctx context.Context) (int, error) {
	if mock.CountAllFunc == nil {
		panic("auditRepoMock.CountAllFunc: method is nil but auditRepo.CountAll was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCountAll.Lock()
	mock.calls.CountAll = append(mock.calls.CountAll, callInfo)
	mock.lockCountAll.Unlock()
	return mock.CountAllFunc(ctx)
}

func (mock *auditRepoMock) CountAllCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountAll.RLock()
	calls := mock.calls.CountAll
	mock.lockCountAll.RUnlock()
	return calls
}

func (mock *auditRepoMock) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.DeleteOlderThanFunc == nil {
		panic("auditRepoMock.DeleteOlderThanFunc: method is nil but auditRepo.DeleteOlderThan was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteOlderThan.Lock()
	mock.calls.DeleteOlderThan = append(mock.calls.DeleteOlderThan, callInfo)
	mock.lockDeleteOlderThan.Unlock()
	return mock.DeleteOlderThanFunc(ctx, cutoff)
}

func (mock *auditRepoMock) DeleteOlderThanCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteOlderThan.RLock()
	calls := mock.calls.DeleteOlderThan
	mock.lockDeleteOlderThan.RUnlock()
	return calls
}

func (mock *auditRepoMock) ActivityByActor(ctx context.Context, since time.Time, actionTypes []string) (domain.ActorActivity, error) {
	if mock.ActivityByActorFunc == nil {
		panic("auditRepoMock.ActivityByActorFunc: method is nil but auditRepo.ActivityByActor was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		Since       time.Time
		ActionTypes []string
	}{Ctx: ctx, Since: since, ActionTypes: actionTypes}
	mock.lockActivityByActor.Lock()
	mock.calls.ActivityByActor = append(mock.calls.ActivityByActor, callInfo)
	mock.lockActivityByActor.Unlock()
	return mock.ActivityByActorFunc(ctx, since, actionTypes)
}

func (mock *auditRepoMock) ActivityByActorCalls() []struct {
	Ctx         context.Context
	Since       time.Time
	ActionTypes []string
} {
	mock.lockActivityByActor.RLock()
	calls := mock.calls.ActivityByActor
	mock.lockActivityByActor.RUnlock()
	return calls
}
