package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pantry/pkg/runner/household"
)

func addHousehold(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "household",
		Short: "Manage the shared household",
		Example: `
pantry household
pantry household create
pantry household join <id or invite url>
pantry household invite
pantry household leave
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := household.Info{Resolver: d.resolver}
			return oo.HandleError(s.Do(ctx))
		},
	}

	addHouseholdCreate(cmd)
	addHouseholdJoin(cmd)
	addHouseholdLeave(cmd)
	addHouseholdInvite(cmd)

	topLevel.AddCommand(cmd)
}

func addHouseholdCreate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a household and join it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := household.Create{Resolver: d.resolver}
			return oo.HandleError(s.Do(ctx))
		},
	}
	topLevel.AddCommand(cmd)
}

func addHouseholdJoin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a household by id or invite URL",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a household id or invite url")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := household.Join{ID: strings.Join(args, " "), Resolver: d.resolver}
			return oo.HandleError(s.Do(ctx))
		},
	}
	topLevel.AddCommand(cmd)
}

func addHouseholdLeave(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "Leave the household",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := household.Leave{Resolver: d.resolver}
			return oo.HandleError(s.Do(ctx))
		},
	}
	topLevel.AddCommand(cmd)
}

func addHouseholdInvite(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Print the invite URL for the household",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			d, err := setupResolved(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			s := household.Invite{Origin: origin(d.cfg.BaseURL), Resolver: d.resolver}
			return oo.HandleError(s.Do(ctx))
		},
	}
	topLevel.AddCommand(cmd)
}

// origin strips the API prefix so invite links point at the site root.
func origin(baseURL string) string {
	return strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api")
}
