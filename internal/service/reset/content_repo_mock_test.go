package reset

import (
	"context"
	"github.com/google/uuid"
	"sync"
)

var _ contentRepo = &contentRepoMock{}

type contentRepoMock struct {
	ArchiveArchiveItemsFunc func(ctx context.Context, profileID uuid.UUID) (int, error)

	ArchiveCommendationsFunc func(ctx context.Context, profileID uuid.UUID) (int, error)

	DeleteArchiveItemsFunc func(ctx context.Context, profileID uuid.UUID) (int, error)

	DeleteCommendationsFunc func(ctx context.Context, profileID uuid.UUID) (int, error)

	DeleteMilestonesFunc func(ctx context.Context, profileID uuid.UUID) (int, error)

	EnqueueStorageCleanupFunc func(ctx context.Context, profileID uuid.UUID, resetID uuid.UUID) (int, error)

	ResetProfileFunc func(ctx context.Context, profileID uuid.UUID) error

	calls struct {
		ArchiveArchiveItems []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
		ArchiveCommendations []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
		DeleteArchiveItems []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
		DeleteCommendations []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
		DeleteMilestones []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
		EnqueueStorageCleanup []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
			ResetID   uuid.UUID
		}
		ResetProfile []struct {
			Ctx       context.Context
			ProfileID uuid.UUID
		}
	}
	lockArchiveArchiveItems   sync.RWMutex
	lockArchiveCommendations  sync.RWMutex
	lockDeleteArchiveItems    sync.RWMutex
	lockDeleteCommendations   sync.RWMutex
	lockDeleteMilestones      sync.RWMutex
	lockEnqueueStorageCleanup sync.RWMutex
	lockResetProfile          sync.RWMutex
}

func (mock *contentRepoMock) ArchiveArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error) {
	if mock.ArchiveArchiveItemsFunc == nil {
		panic("contentRepoMock.ArchiveArchiveItemsFunc: method is nil but contentRepo.ArchiveArchiveItems was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockArchiveArchiveItems.Lock()
	mock.calls.ArchiveArchiveItems = append(mock.calls.ArchiveArchiveItems, callInfo)
	mock.lockArchiveArchiveItems.Unlock()
	return mock.ArchiveArchiveItemsFunc(ctx, profileID)
}

func (mock *contentRepoMock) ArchiveArchiveItemsCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockArchiveArchiveItems.RLock()
	calls := mock.calls.ArchiveArchiveItems
	mock.lockArchiveArchiveItems.RUnlock()
	return calls
}

func (mock *contentRepoMock) ArchiveCommendations(ctx context.Context, profileID uuid.UUID) (int, error) {
	if mock.ArchiveCommendationsFunc == nil {
		panic("contentRepoMock.ArchiveCommendationsFunc: method is nil but contentRepo.ArchiveCommendations was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockArchiveCommendations.Lock()
	mock.calls.ArchiveCommendations = append(mock.calls.ArchiveCommendations, callInfo)
	mock.lockArchiveCommendations.Unlock()
	return mock.ArchiveCommendationsFunc(ctx, profileID)
}

func (mock *contentRepoMock) ArchiveCommendationsCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockArchiveCommendations.RLock()
	calls := mock.calls.ArchiveCommendations
	mock.lockArchiveCommendations.RUnlock()
	return calls
}

func (mock *contentRepoMock) DeleteArchiveItems(ctx context.Context, profileID uuid.UUID) (int, error) {
	if mock.DeleteArchiveItemsFunc == nil {
		panic("contentRepoMock.DeleteArchiveItemsFunc: method is nil but contentRepo.DeleteArchiveItems was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockDeleteArchiveItems.Lock()
	mock.calls.DeleteArchiveItems = append(mock.calls.DeleteArchiveItems, callInfo)
	mock.lockDeleteArchiveItems.Unlock()
	return mock.DeleteArchiveItemsFunc(ctx, profileID)
}

func (mock *contentRepoMock) DeleteArchiveItemsCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockDeleteArchiveItems.RLock()
	calls := mock.calls.DeleteArchiveItems
	mock.lockDeleteArchiveItems.RUnlock()
	return calls
}

func (mock *contentRepoMock) DeleteCommendations(ctx context.Context, profileID uuid.UUID) (int, error) {
	if mock.DeleteCommendationsFunc == nil {
		panic("contentRepoMock.DeleteCommendationsFunc: method is nil but contentRepo.DeleteCommendations was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockDeleteCommendations.Lock()
	mock.calls.DeleteCommendations = append(mock.calls.DeleteCommendations, callInfo)
	mock.lockDeleteCommendations.Unlock()
	return mock.DeleteCommendationsFunc(ctx, profileID)
}

func (mock *contentRepoMock) DeleteCommendationsCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockDeleteCommendations.RLock()
	calls := mock.calls.DeleteCommendations
	mock.lockDeleteCommendations.RUnlock()
	return calls
}

func (mock *contentRepoMock) DeleteMilestones(ctx context.Context, profileID uuid.UUID) (int, error) {
	if mock.DeleteMilestonesFunc == nil {
		panic("contentRepoMock.DeleteMilestonesFunc: method is nil but contentRepo.DeleteMilestones was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockDeleteMilestones.Lock()
	mock.calls.DeleteMilestones = append(mock.calls.DeleteMilestones, callInfo)
	mock.lockDeleteMilestones.Unlock()
	return mock.DeleteMilestonesFunc(ctx, profileID)
}

func (mock *contentRepoMock) DeleteMilestonesCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockDeleteMilestones.RLock()
	calls := mock.calls.DeleteMilestones
	mock.lockDeleteMilestones.RUnlock()
	return calls
}

func (mock *contentRepoMock) EnqueueStorageCleanup(ctx context.Context, profileID uuid.UUID, resetID uuid.UUID) (int, error) {
	if mock.EnqueueStorageCleanupFunc == nil {
		panic("contentRepoMock.EnqueueStorageCleanupFunc: method is nil but contentRepo.EnqueueStorageCleanup was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
		ResetID   uuid.UUID
	}{Ctx: ctx, ProfileID: profileID, ResetID: resetID}
	mock.lockEnqueueStorageCleanup.Lock()
	mock.calls.EnqueueStorageCleanup = append(mock.calls.EnqueueStorageCleanup, callInfo)
	mock.lockEnqueueStorageCleanup.Unlock()
	return mock.EnqueueStorageCleanupFunc(ctx, profileID, resetID)
}

func (mock *contentRepoMock) EnqueueStorageCleanupCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
	ResetID   uuid.UUID
} {
	mock.lockEnqueueStorageCleanup.RLock()
	calls := mock.calls.EnqueueStorageCleanup
	mock.lockEnqueueStorageCleanup.RUnlock()
	return calls
}

func (mock *contentRepoMock) ResetProfile(ctx context.Context, profileID uuid.UUID) error {
	if mock.ResetProfileFunc == nil {
		panic("contentRepoMock.ResetProfileFunc: method is nil but contentRepo.ResetProfile was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		ProfileID uuid.UUID
	}{Ctx: ctx, ProfileID: profileID}
	mock.lockResetProfile.Lock()
	mock.calls.ResetProfile = append(mock.calls.ResetProfile, callInfo)
	mock.lockResetProfile.Unlock()
	return mock.ResetProfileFunc(ctx, profileID)
}

func (mock *contentRepoMock) ResetProfileCalls() []struct {
	Ctx       context.Context
	ProfileID uuid.UUID
} {
	mock.lockResetProfile.RLock()
	calls := mock.calls.ResetProfile
	mock.lockResetProfile.RUnlock()
	return calls
}
