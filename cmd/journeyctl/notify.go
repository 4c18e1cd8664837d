package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/app"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

func notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "notifications",
		Usage: "Inspect notification delivery",
		Commands: []*cli.Command{
			{
				Name:  "failures",
				Usage: "List notifications the sender could not deliver",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 50},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					limit := int(cmd.Int("limit"))
					if limit < 1 {
						return fmt.Errorf("--limit must be positive")
					}
					return withCore(ctx, cmd, func(ctx context.Context, core *app.Core, _ *config.Config) error {
						list, err := core.Failures.ListRecent(ctx, limit)
						if err != nil {
							return err
						}
						return printNotificationFailures(os.Stdout, list)
					})
				},
			},
		},
	}
}

func printNotificationFailures(w io.Writer, list []domain.NotificationFailure) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no failed notifications")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tKIND\tRECIPIENT\tERROR")
	for _, f := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			humanize.Time(f.CreatedAt), f.Notification.Kind, f.Notification.Recipient, f.Error)
	}
	return tw.Flush()
}
