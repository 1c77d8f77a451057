package remove

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Remove deletes items matched by id or name.
type Remove struct {
	Queries []string

	Store *liststore.Store
}

func (n *Remove) Do(ctx context.Context) error {
	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}

	for _, q := range n.Queries {
		snap := n.Store.Snapshot()
		item := match(snap.List, q)
		if item == nil {
			return fmt.Errorf("no item matching %q", q)
		}
		if err := n.Store.Remove(ctx, item.ID); err != nil {
			return err
		}
	}

	snap := n.Store.Snapshot()
	pp := printers.PrettyPrint{}
	pp.Title("Groceries")
	pp.List(snap.List.Rows()...)
	return nil
}

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
