package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm"},
		Short:   "Delete an item outright",
		Example: `
pantry remove milk
pantry rm milk, bread
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an item name or id")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := remove.Remove{
				Queries: splitNames(args),
				Store:   d.store,
			}
			return oo.HandleError(s.Do(ctx))
		},
	}

	topLevel.AddCommand(cmd)
}
