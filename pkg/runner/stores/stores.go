package stores

import (
	"context"
	"fmt"
	"strings"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
)

// Stores prints the preferred-store selection, toggling the named stores
// first when any are given.
type Stores struct {
	Toggle []string

	Store *liststore.Store
}

func (n *Stores) Do(ctx context.Context) error {
	for _, raw := range n.Toggle {
		name, err := lookup(raw)
		if err != nil {
			return err
		}
		if err := n.Store.ToggleStore(ctx, name); err != nil {
			return err
		}
	}

	snap := n.Store.Snapshot()
	pp := printers.PrettyPrint{}
	pp.Stores(snap.SelectedStores)
	return nil
}

func lookup(raw string) (grocery.StoreName, error) {
	for _, s := range grocery.AllStores {
		if strings.EqualFold(string(s), raw) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown store %q", raw)
}
