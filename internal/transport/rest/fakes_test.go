package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/audit"
	"github.com/heartmarshall/journeys-backend/internal/service/bulk"
	"github.com/heartmarshall/journeys-backend/internal/service/reset"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
	"github.com/heartmarshall/journeys-backend/internal/service/steward"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeReviews struct {
	get            func(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error)
	approve        func(ctx context.Context, id uuid.UUID) (*review.Outcome, error)
	requestChanges func(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error)
	reject         func(ctx context.Context, id uuid.UUID, reason *string) (*review.Outcome, error)
}

func (f *fakeReviews) Get(ctx context.Context, id uuid.UUID) (*domain.ReviewableItem, error) {
	return f.get(ctx, id)
}
func (f *fakeReviews) Submit(context.Context, uuid.UUID) (*review.Outcome, error) {
	return nil, domain.ErrInvalidTransition
}
func (f *fakeReviews) Approve(ctx context.Context, id uuid.UUID) (*review.Outcome, error) {
	return f.approve(ctx, id)
}
func (f *fakeReviews) RequestChanges(ctx context.Context, id uuid.UUID, note string) (*review.Outcome, error) {
	return f.requestChanges(ctx, id, note)
}
func (f *fakeReviews) Reject(ctx context.Context, id uuid.UUID, reason *string) (*review.Outcome, error) {
	return f.reject(ctx, id, reason)
}
func (f *fakeReviews) Withdraw(context.Context, uuid.UUID) (*review.Outcome, error) {
	return nil, domain.ErrForbidden
}

type fakeDispatcher struct {
	sent []domain.Notification
}

func (f *fakeDispatcher) Dispatch(_ context.Context, n domain.Notification) {
	f.sent = append(f.sent, n)
}

type fakeBulk struct {
	start func(ctx context.Context, in bulk.ReviewInput) (*batch.Started, error)
}

func (f *fakeBulk) Start(ctx context.Context, in bulk.ReviewInput) (*batch.Started, error) {
	return f.start(ctx, in)
}

type fakeAudit struct {
	query   func(ctx context.Context, f domain.AuditFilter) (*domain.AuditPage, error)
	export  func(ctx context.Context, f domain.AuditFilter) (*audit.ExportResult, error)
	cleanup func(ctx context.Context, days int) (*audit.CleanupResult, error)
}

func (f *fakeAudit) Query(ctx context.Context, flt domain.AuditFilter) (*domain.AuditPage, error) {
	return f.query(ctx, flt)
}
func (f *fakeAudit) ExportCSV(ctx context.Context, flt domain.AuditFilter) (*audit.ExportResult, error) {
	return f.export(ctx, flt)
}
func (f *fakeAudit) Cleanup(ctx context.Context, days int) (*audit.CleanupResult, error) {
	return f.cleanup(ctx, days)
}

type fakeStewards struct {
	assign   func(ctx context.Context, in steward.AssignInput) (*domain.StewardAssignment, error)
	workload func(ctx context.Context, window time.Duration) ([]domain.StewardWorkload, error)
}

func (f *fakeStewards) Assign(ctx context.Context, in steward.AssignInput) (*domain.StewardAssignment, error) {
	return f.assign(ctx, in)
}
func (f *fakeStewards) ListForProfile(context.Context, uuid.UUID, bool) ([]domain.StewardAssignment, error) {
	return []domain.StewardAssignment{}, nil
}
func (f *fakeStewards) Deactivate(context.Context, uuid.UUID, *string) (*domain.StewardAssignment, error) {
	return nil, domain.ErrNotFound
}
func (f *fakeStewards) StartBulkDeactivate(context.Context, steward.BulkDeactivateInput) (*batch.Started, error) {
	return &batch.Started{Summary: batch.Noop(domain.BulkDeactivate)}, nil
}
func (f *fakeStewards) ListWorkload(ctx context.Context, window time.Duration) ([]domain.StewardWorkload, error) {
	return f.workload(ctx, window)
}

type fakeResets struct {
	execute func(ctx context.Context, in reset.Input) (*domain.ResetResult, error)
	history func(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error)
}

func (f *fakeResets) CheckReadiness(_ context.Context, in reset.Input) (*domain.ResetReadiness, error) {
	return &domain.ResetReadiness{ProfileSelected: in.ProfileID != uuid.Nil, Missing: []string{"reason", "confirmation"}}, nil
}
func (f *fakeResets) Execute(ctx context.Context, in reset.Input) (*domain.ResetResult, error) {
	return f.execute(ctx, in)
}
func (f *fakeResets) History(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.ResetHistoryEntry, error) {
	return f.history(ctx, profileID, limit)
}

type testServer struct {
	reviews  *fakeReviews
	notify   *fakeDispatcher
	bulk     *fakeBulk
	jobs     *batch.Registry
	audit    *fakeAudit
	stewards *fakeStewards
	resets   *fakeResets
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		reviews:  &fakeReviews{},
		notify:   &fakeDispatcher{},
		bulk:     &fakeBulk{},
		jobs:     batch.NewRegistry(testLogger(), time.Minute, time.Hour),
		audit:    &fakeAudit{},
		stewards: &fakeStewards{},
		resets:   &fakeResets{},
	}
	t.Cleanup(func() { _ = s.jobs.Wait(context.Background()) })

	log := testLogger()
	s.handler = NewRouter(Handlers{
		Health:  NewHealthHandler(&dbPingerMock{}, nil, "test"),
		Review:  NewReviewHandler(s.reviews, s.notify, log),
		Bulk:    NewBulkHandler(s.bulk, s.jobs, log),
		Audit:   NewAuditHandler(s.audit, 90, log),
		Steward: NewStewardHandler(s.stewards, 30*24*time.Hour, log),
		Reset:   NewResetHandler(s.resets, log),
	}, RouterOptions{})
	return s
}

// do sends a request as actor. A zero actor sends an anonymous request.
func (s *testServer) do(actor domain.Actor, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if actor.ID != uuid.Nil {
		req = req.WithContext(domain.WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

var (
	testSteward = domain.Actor{ID: uuid.New(), Email: "steward@example.com", Role: domain.RoleSteward}
	testMember  = domain.Actor{ID: uuid.New(), Email: "member@example.com", Role: domain.RoleMember}
)
