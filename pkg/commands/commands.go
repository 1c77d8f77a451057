package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "pantry",
		Short: base.Wrap80("The household grocery list and task schedule on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addCheck(topLevel)
	addRemove(topLevel)
	addClear(topLevel)
	addMagic(topLevel)
	addStores(topLevel)
	addSchedule(topLevel)
	addHousehold(topLevel)
	addVersion(topLevel)
}
