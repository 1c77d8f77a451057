package magic

import (
	"context"

	"github.com/fatih/color"

	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Magic toggles the magic reorder flag, or reports it when Show is set.
type Magic struct {
	Show bool

	Store *liststore.Store
}

func (n *Magic) Do(ctx context.Context) error {
	if !n.Show {
		if err := n.Store.ToggleMagic(ctx); err != nil {
			return err
		}
	}

	snap := n.Store.Snapshot()
	state := color.New(color.FgGreen).Sprint("on")
	if !snap.MagicEnabled {
		state = color.New(color.Faint).Sprint("off")
	}

	pp := printers.PrettyPrint{}
	pp.Title("Magic reorder: " + state)
	if !n.Show {
		pp.List(snap.Filtered.Rows()...)
	}
	return nil
}
