package commands

import (
	"context"

	"github.com/spf13/cobra"

	teaui "tableflip.dev/pantry/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive list",
		Example: `
pantry ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return err
			}
			return teaui.Run(d.store, d.cfg.PollInterval)
		},
	}

	topLevel.AddCommand(cmd)
}
