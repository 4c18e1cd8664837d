package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pressly/goose/v3"
	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/adapter/postgres"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply or inspect database migrations",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "Apply every pending migration",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, _, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					results, err := postgres.Migrate(ctx, cfg.Database.DSN)
					printMigrationResults(os.Stdout, results)
					return err
				},
			},
			{
				Name:  "status",
				Usage: "List migrations and when they were applied",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg, _, err := loadConfig(cmd)
					if err != nil {
						return err
					}
					provider, closeDB, err := postgres.OpenMigrator(cfg.Database.DSN)
					if err != nil {
						return err
					}
					defer closeDB() //nolint:errcheck

					statuses, err := provider.Status(ctx)
					if err != nil {
						return fmt.Errorf("goose status: %w", err)
					}
					return printMigrationStatus(os.Stdout, statuses)
				},
			},
		},
	}
}

func printMigrationResults(w io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no pending migrations")
		return
	}
	for _, r := range results {
		state := "ok"
		if r.Error != nil {
			state = "FAILED: " + r.Error.Error()
		}
		fmt.Fprintf(w, "%s %05d %s (%s) %s\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration.Round(time.Millisecond), state)
	}
}

func printMigrationStatus(w io.Writer, statuses []*goose.MigrationStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tAPPLIED\tFILE")
	for _, s := range statuses {
		applied := "-"
		if s.State == goose.StateApplied && !s.AppliedAt.IsZero() {
			applied = humanize.Time(s.AppliedAt)
		}
		fmt.Fprintf(tw, "%05d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
	}
	return tw.Flush()
}
