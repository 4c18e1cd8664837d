package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/heartmarshall/journeys-backend/internal/app"
	"github.com/heartmarshall/journeys-backend/internal/config"
	"github.com/heartmarshall/journeys-backend/internal/domain"
)

func resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Inspect Safe Reset runs",
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "List the most recent resets of a profile",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "profile", Required: true, Usage: "profile id"},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					profileID, err := uuid.Parse(cmd.String("profile"))
					if err != nil {
						return fmt.Errorf("--profile: %w", err)
					}
					return withCore(ctx, cmd, func(ctx context.Context, core *app.Core, _ *config.Config) error {
						list, err := core.Reset.History(ctx, profileID, int(cmd.Int("limit")))
						if err != nil {
							return err
						}
						return printResetHistory(os.Stdout, list)
					})
				},
			},
		},
	}
}

func printResetHistory(w io.Writer, list []domain.ResetHistoryEntry) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "no resets recorded")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tMODE\tOUTCOME\tREASON\tBY\tARCHIVE\tCOMMENDATIONS\tMILESTONES")
	for _, e := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			humanize.Time(e.CreatedAt), e.Mode, e.Outcome, e.ReasonCode, e.RequestedByEmail,
			e.Counts.ArchiveItems, e.Counts.Commendations, e.Counts.Milestones)
	}
	return tw.Flush()
}
