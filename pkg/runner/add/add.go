package add

import (
	"context"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Add creates one or more items of the given kind and prints the refreshed
// list.
type Add struct {
	Kind  grocery.Kind
	Names []string

	Store *liststore.Store
}

func (n *Add) Do(ctx context.Context) error {
	switch n.Kind {
	case grocery.KindTask:
		n.Store.SetMode(grocery.KindTask)
		for _, name := range n.Names {
			n.Store.SetInput(name)
			if err := n.Store.Create(ctx); err != nil {
				return err
			}
		}
	default:
		if err := n.Store.AddItems(ctx, n.Names); err != nil {
			return err
		}
		if err := n.Store.Refresh(ctx); err != nil {
			return err
		}
	}

	snap := n.Store.Snapshot()
	pp := printers.PrettyPrint{}
	pp.Title(title(n.Kind))
	pp.List(snap.Filtered.Rows()...)
	return nil
}

func title(k grocery.Kind) string {
	if k == grocery.KindTask {
		return "Tasks"
	}
	return "Groceries"
}
