package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/magic"
)

func addMagic(topLevel *cobra.Command) {
	show := false

	cmd := &cobra.Command{
		Use:   "magic",
		Short: "Toggle the magic store-aware reorder",
		Example: `
pantry magic
pantry magic --show
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var d *deps
			var err error
			if show {
				d, err = setup()
			} else {
				d, err = setupResolved(ctx)
			}
			if err != nil {
				return oo.HandleError(err)
			}
			s := magic.Magic{Show: show, Store: d.store}
			return oo.HandleError(s.Do(ctx))
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Only print the current state.")

	topLevel.AddCommand(cmd)
}
