package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/commands/options"
	"tableflip.dev/pantry/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Toggle the checked flag on an item",
		Example: `
pantry check milk
pantry check milk, bread
pantry check 0b54ce46
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
			s := check.Check{
				ShowID:  io.ShowID,
				Queries: splitNames(args),
				Store:   d.store,
			}
			err = s.Do(ctx)
			d.store.Flush()
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
