package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/commands/options"
	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	ko := &options.KindOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get the grocery list",
		Example: `
pantry get
pantry get --task
pantry get --all --show-id
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				ShowID: io.ShowID,
				Kind:   kindFor(ko),
				All:    ko.All,
				Store:  d.store,
			}
			err = s.Do(ctx)
			d.store.Flush()
			return oo.HandleError(err)
		},
	}

	options.AddKindArgs(cmd, ko)
	options.AddAllKindsArg(cmd, ko)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

func kindFor(ko *options.KindOptions) grocery.Kind {
	if ko.Task {
		return grocery.KindTask
	}
	return grocery.KindGrocery
}
