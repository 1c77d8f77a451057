package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/commands/options"
	"tableflip.dev/pantry/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ko := &options.KindOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add items to the list",
		Long:  "Add one or more items. Arguments form a single name; separate multiple items with commas.",
		Example: `
pantry add milk
pantry add milk, bread, eggs
pantry add --task take out the bins
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires an item name")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Kind:  kindFor(ko),
				Names: splitNames(args),
				Store: d.store,
			}
			err = s.Do(ctx)
			d.store.Flush()
			return oo.HandleError(err)
		},
	}

	options.AddKindArgs(cmd, ko)

	topLevel.AddCommand(cmd)
}

// splitNames joins the raw args back together, then splits on commas so a
// single invocation can add several items.
func splitNames(args []string) []string {
	joined := strings.Join(args, " ")
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
