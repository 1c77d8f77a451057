package options

import (
	"github.com/spf13/cobra"
)

// KindOptions
type KindOptions struct {
	Task bool
	All  bool
}

func AddKindArgs(cmd *cobra.Command, o *KindOptions) {
	cmd.Flags().BoolVarP(&o.Task, "task", "t", false,
		"Operate on tasks instead of groceries.")
}

func AddAllKindsArg(cmd *cobra.Command, o *KindOptions) {
	cmd.Flags().BoolVar(&o.All, "all", false,
		"Show groceries and tasks.")
}
