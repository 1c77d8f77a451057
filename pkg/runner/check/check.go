package check

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Check toggles the checked flag on items matched by id or name.
type Check struct {
	ShowID  bool
	Queries []string

	Store *liststore.Store
}

func (n *Check) Do(ctx context.Context) error {
	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}

	snap := n.Store.Snapshot()
	for _, q := range n.Queries {
		item := match(snap.List, q)
		if item == nil {
			return fmt.Errorf("no item matching %q", q)
		}
		n.Store.Check(item.ID)
	}
	n.Store.Flush()

	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}
	snap = n.Store.Snapshot()

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.Title("Groceries")
	pp.List(snap.List.Rows()...)
	return nil
}

// match finds an item by exact id, falling back to a case-insensitive name
// match.
func match(list grocery.List, q string) *grocery.Item {
	if item := list.Find(q); item != nil {
		return item
	}
	for i := range list.Items {
		if strings.EqualFold(list.Items[i].Name, q) {
			return &list.Items[i]
		}
	}
	return nil
}
