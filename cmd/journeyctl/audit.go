package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/app"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

const dayLayout = "2006-01-02"

func auditCommand() *cli.Command {
	return &cli.Command{
		Name:  "audit",
		Usage: "Export or prune the audit log",
		Commands: []*cli.Command{
			{
				Name:  "export",
				Usage: "Write matching entries to a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default: generated name in the working directory)"},
					&cli.StringFlag{Name: "action-type"},
					&cli.StringFlag{Name: "scope-type"},
					&cli.StringFlag{Name: "actor-email"},
					&cli.StringFlag{Name: "search"},
					&cli.StringFlag{Name: "from", Usage: "first day, YYYY-MM-DD"},
					&cli.StringFlag{Name: "to", Usage: "last day, YYYY-MM-DD"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					f, err := exportFilter(cmd)
					if err != nil {
						return err
					}
					return withCore(ctx, cmd, func(ctx context.Context, core *app.Core, _ *config.Config) error {
						res, err := core.Audit.ExportCSV(ctx, f)
						if err != nil {
							return err
						}
						out := cmd.String("out")
						if out == "" {
							out = res.Filename
						}
						if err := os.WriteFile(out, res.Data, 0o600); err != nil {
							return fmt.Errorf("write export: %w", err)
						}
						fmt.Printf("%s -> %s\n", res.Message, out)
						return nil
					})
				},
			},
			{
				Name:  "cleanup",
				Usage: "Delete entries older than the retention window",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "days", Usage: "retention in days (default: moderation.audit_retention_days)"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withCore(ctx, cmd, func(ctx context.Context, core *app.Core, cfg *config.Config) error {
						days := cfg.Moderation.AuditRetentionDays
						if cmd.IsSet("days") {
							days = int(cmd.Int("days"))
						}
						res, err := core.Audit.Cleanup(ctx, days)
						if err != nil {
							return err
						}
						fmt.Printf("deleted %d entries before %s, %d remain\n",
							res.Deleted, res.Cutoff.Format(time.RFC3339), res.RemainingTotal)
						return nil
					})
				},
			},
		},
	}
}

// exportFilter builds the audit filter from the export flags.
func exportFilter(cmd *cli.Command) (domain.AuditFilter, error) {
	f := domain.AuditFilter{
		ActionType: cmd.String("action-type"),
		ScopeType:  domain.ScopeType(cmd.String("scope-type")),
		ActorEmail: cmd.String("actor-email"),
		Search:     cmd.String("search"),
	}
	var err error
	if f.DateFrom, err = parseDay(cmd.String("from")); err != nil {
		return f, fmt.Errorf("--from: %w", err)
	}
	if f.DateTo, err = parseDay(cmd.String("to")); err != nil {
		return f, fmt.Errorf("--to: %w", err)
	}
	return f, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return nil, fmt.Errorf("want YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}
