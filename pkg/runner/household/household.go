// Package household holds the CLI runners for household identity: showing
// the resolved identity, creating and joining households, and leaving one.
package household

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pantry/pkg/household"
)

// Info prints the resolved identity and the effective household id.
type Info struct {
	Resolver *household.Resolver
}

func (n *Info) Do(ctx context.Context) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("User"), n.Resolver.UserID())
	joined := n.Resolver.HouseholdID()
	if joined == "" {
		tbl.AddRow(bold.Sprint("Household"), faint.Sprint("none"))
	} else {
		tbl.AddRow(bold.Sprint("Household"), joined)
	}
	tbl.AddRow(bold.Sprint("Effective"), n.Resolver.EffectiveHouseholdID())

	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

// Create makes a new household and joins it.
type Create struct {
	Resolver *household.Resolver
}

func (n *Create) Do(ctx context.Context) error {
	id, err := n.Resolver.CreateAndJoin(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("created household %s\n", id)
	return nil
}

// Join joins the household named by a raw id or an invite URL.
type Join struct {
	ID string

	Resolver *household.Resolver
}

func (n *Join) Do(ctx context.Context) error {
	if err := n.Resolver.Join(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("joined household %s\n", n.Resolver.HouseholdID())
	return nil
}

// Leave leaves the joined household. Leaving when not in one is a no-op.
type Leave struct {
	Resolver *household.Resolver
}

func (n *Leave) Do(ctx context.Context) error {
	if err := n.Resolver.Leave(ctx); err != nil {
		return err
	}
	fmt.Printf("left; now using household %s\n", n.Resolver.EffectiveHouseholdID())
	return nil
}

// Invite prints the join URL for the current household.
type Invite struct {
	Origin string

	Resolver *household.Resolver
}

func (n *Invite) Do(ctx context.Context) error {
	id := n.Resolver.HouseholdID()
	if id == "" {
		return fmt.Errorf("not in a household, create one first")
	}
	fmt.Printf("%s/households/join/%s\n", strings.TrimRight(n.Origin, "/"), id)
	return nil
}
