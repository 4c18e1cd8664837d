// Command cleanup deletes audit entries older than the configured retention
// window and records the run in the audit log. It is intended to be invoked
// by an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/journeys-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/journeys-backend/internal/app"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
	"github.com/heartmarshall/journeys-backend/internal/service/audit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := audit.NewService(logger, auditrepo.New(pool), postgres.NewTxManager(pool), cfg.Moderation.ExportMaxRows)

	days := cfg.Moderation.AuditRetentionDays
	res, err := svc.Cleanup(domain.WithActor(ctx, domain.SystemActor), days)
	if err != nil {
		logger.Error("audit cleanup failed",
			slog.String("error", err.Error()),
			slog.Int("retention_days", days),
		)
		pool.Close()
		os.Exit(1)
	}

	logger.Info("audit cleanup completed",
		slog.Int("deleted", res.Deleted),
		slog.Int("remaining", res.RemainingTotal),
		slog.Time("cutoff", res.Cutoff),
	)
}
