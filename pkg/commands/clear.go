package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/clear"
)

func addClear(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every checked item",
		Example: `
pantry clear
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := clear.Clear{Store: d.store}
			return oo.HandleError(s.Do(ctx))
		},
	}

	topLevel.AddCommand(cmd)
}
