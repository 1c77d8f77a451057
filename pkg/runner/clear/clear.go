package clear

import (
	"context"

	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Clear batch deletes every checked item and prints what remains.
type Clear struct {
	Store *liststore.Store
}

func (n *Clear) Do(ctx context.Context) error {
	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}
	if err := n.Store.ClearChecked(ctx); err != nil {
		return err
	}

	snap := n.Store.Snapshot()
	pp := printers.PrettyPrint{}
	pp.Title("Groceries")
	pp.List(snap.List.Rows()...)
	return nil
}
