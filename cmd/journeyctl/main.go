// Command journeyctl is the operator CLI of the moderation control plane:
// migrations, audit export and retention, reset history, notification
// failures and dev tokens.
// Commands that act on data run as the system actor.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
	"github.com/heartmarshall/journeys-backend/internal/app"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

func main() {
	root := &cli.Command{
		Name:    "journeyctl",
		Usage:   "Operate the journeys moderation backend",
		Version: app.BuildVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to config.yaml", Sources: cli.EnvVars("CONFIG_PATH")},
		},
		Commands: []*cli.Command{
			migrateCommand(),
			auditCommand(),
			resetCommand(),
			notificationsCommand(),
			tokenCommand(),
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "journeyctl:", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cli.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadFrom(cmd.String("config"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, app.NewLogger(cfg.Log), nil
}

// withCore connects to the database, wires the services and runs fn as the
// system actor.
func withCore(ctx context.Context, cmd *cli.Command, fn func(ctx context.Context, core *app.Core, cfg *config.Config) error) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	core := app.NewCore(cfg, pool, logger)
	return fn(domain.WithActor(ctx, domain.SystemActor), core, cfg)
}
