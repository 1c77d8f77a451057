package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/stores"
)

func addStores(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stores",
		Short: "Show or toggle the preferred stores",
		Long:  "With no arguments, show the selection. Named stores are toggled first.",
		Example: `
pantry stores
pantry stores aldi
pantry stores coles, sam cocos
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var d *deps
			var err error
			if len(args) == 0 {
				d, err = setup()
			} else {
				d, err = setupResolved(ctx)
			}
			if err != nil {
				return oo.HandleError(err)
			}
			s := stores.Stores{
				Toggle: splitNames(args),
				Store:  d.store,
			}
			return oo.HandleError(s.Do(ctx))
		},
	}

	topLevel.AddCommand(cmd)
}
