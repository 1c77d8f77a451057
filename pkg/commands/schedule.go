package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/schedule"
)

func addSchedule(topLevel *cobra.Command) {
	var on []string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show or set the days a task repeats on",
		Long:  "With no --on flags, print the task's schedule. --on dates replace the whole schedule.",
		Example: `
pantry schedule bins
pantry schedule bins --on 2026-09-01 --on 2026-09-08
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a task name or id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := schedule.Schedule{
				Query: strings.Join(args, " "),
				Dates: on,
				Store: d.store,
			}
			return oo.HandleError(s.Do(ctx))
		},
	}

	cmd.Flags().StringArrayVar(&on, "on", nil, "A date (2006-01-02) to schedule the task on. Repeatable.")

	topLevel.AddCommand(cmd)
}
