package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/audit"
	contentrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/content"
	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres/notifylog"
	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres/resethistory"
	reviewrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/review"
	stewardrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/steward"
	userrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/journeys-backend/internal/auth"
	"github.com/heartmarshall/journeys-backend/internal/batch"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/notify"
	"github.com/heartmarshall/journeys-backend/internal/service/audit"
	"github.com/heartmarshall/journeys-backend/internal/service/bulk"
	"github.com/heartmarshall/journeys-backend/internal/service/reset"
	"github.com/heartmarshall/journeys-backend/internal/service/review"
	"github.com/heartmarshall/journeys-backend/internal/service/steward"
	"github.com/heartmarshall/journeys-backend/internal/transport/middleware"
	"github.com/heartmarshall/journeys-backend/internal/transport/rest"
)

// Core holds the wired services of the moderation control plane. The server
// and the operator commands share it.
type Core struct {
	Jobs     *batch.Registry
	Notify   *notify.Dispatcher
	Failures *notifylog.Repo
	Audit    *audit.Service
	Review   *review.Service
	Bulk     *bulk.Processor
	Steward  *steward.Service
	Reset    *reset.Service
}

// NewCore wires repositories and services over pool.
func NewCore(cfg *config.Config, pool *pgxpool.Pool, log *slog.Logger) *Core {
	mod := cfg.Moderation
	tx := postgres.NewTxManager(pool)

	audits := auditrepo.New(pool)
	items := reviewrepo.New(pool)
	assignments := stewardrepo.New(pool)
	users := userrepo.New(pool)
	history := resethistory.New(pool)
	content := contentrepo.New(pool)

	jobs := batch.NewRegistry(log, mod.BulkJobTimeout, mod.JobRetention)
	failures := notifylog.New(pool)
	dispatcher := notify.NewDispatcher(log, notify.NewLogSender(log), failures)

	auditSvc := audit.NewService(log, audits, tx, mod.ExportMaxRows)
	reviewSvc := review.NewService(log, items, auditSvc, tx)

	return &Core{
		Jobs:     jobs,
		Notify:   dispatcher,
		Failures: failures,
		Audit:    auditSvc,
		Review:   reviewSvc,
		Bulk:     bulk.NewProcessor(log, reviewSvc, items, auditSvc, dispatcher, jobs, mod.BulkBatchSize),
		Steward:  steward.NewService(log, steward.Deps{
			Assignments: assignments,
			Profiles:    items,
			Users:       users,
			Activity:    auditSvc,
			Audit:       auditSvc,
			Tx:          tx,
			Jobs:        jobs,
		}, mod.BulkBatchSize),
		Reset: reset.NewService(log, content, history, items, auditSvc, dispatcher, tx),
	}
}

// Run is the server entry point. It loads configuration, connects to the
// database, serves HTTP until SIGINT or SIGTERM, then drains in-flight
// requests and bulk jobs.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	core := NewCore(cfg, pool, logger)

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           NewHandler(cfg, pool, core, limiter, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.String("error", err.Error()))
	}
	// Accepted bulk jobs keep running after their request returned.
	if err := core.Jobs.Wait(shutdownCtx); err != nil {
		logger.Warn("bulk jobs still running at shutdown", slog.String("error", err.Error()))
	}
	return nil
}

// NewHandler builds the HTTP handler: the router wrapped in the global
// middleware chain.
func NewHandler(cfg *config.Config, pool *pgxpool.Pool, core *Core, limiter *middleware.RateLimiter, log *slog.Logger) http.Handler {
	jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	router := rest.NewRouter(rest.Handlers{
		Health:  rest.NewHealthHandler(pool, core.Jobs, BuildVersion()),
		Review:  rest.NewReviewHandler(core.Review, core.Notify, log),
		Bulk:    rest.NewBulkHandler(core.Bulk, core.Jobs, log),
		Audit:   rest.NewAuditHandler(core.Audit, cfg.Moderation.AuditRetentionDays, log),
		Steward: rest.NewStewardHandler(core.Steward, cfg.Moderation.WorkloadWindow, log),
		Reset:   rest.NewResetHandler(core.Reset, log),
	}, rest.RouterOptions{
		RequireIdentity: middleware.RequireIdentity,
		ResetLimit:      limiter.Limit("reset", cfg.Moderation.ResetsPerMinute),
	})

	return middleware.Chain(
		middleware.Recovery(log),
		middleware.RequestID,
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwt),
		middleware.Logger(log),
	)(router)
}
