package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Get fetches the list and prints it in layout order.
type Get struct {
	ShowID bool
	Kind   grocery.Kind
	All    bool

	Store *liststore.Store
}

func (n *Get) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("can not get, no list store")
	}
	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}
	fmt.Println("")

	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.All {
		snap := n.Store.Snapshot()
		for _, kind := range []grocery.Kind{grocery.KindGrocery, grocery.KindTask} {
			filtered := snap.List.FilterKind(kind)
			pp.TitleWithCount(title(kind), len(filtered.Items))
			pp.List(filtered.Rows()...)
		}
		return nil
	}

	n.Store.SetMode(n.Kind)
	snap := n.Store.Snapshot()
	pp.TitleWithCount(title(n.Kind), len(snap.Filtered.Items))
	pp.List(snap.Filtered.Rows()...)
	return nil
}

func title(k grocery.Kind) string {
	if k == grocery.KindTask {
		return "Tasks"
	}
	return "Groceries"
}
