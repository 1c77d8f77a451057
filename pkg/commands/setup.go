package commands

import (
	"context"

	"tableflip.dev/pantry/pkg/api"
	"tableflip.dev/pantry/pkg/config"
	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/household"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/prefs"
)

// deps is the wired-up application stack shared by every command.
type deps struct {
	cfg      *config.Config
	store    *liststore.Store
	resolver *household.Resolver
}

func setup() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	p := prefs.Load(cfg.DataPath)
	client := api.NewClient(api.Config{BaseURL: cfg.BaseURL})
	resolver := household.NewResolver(household.NewService(client), p)
	store := liststore.New(grocery.NewService(client), resolver, p, nil)

	return &deps{cfg: cfg, store: store, resolver: resolver}, nil
}

// setupResolved also resolves the household identity against the backend.
func setupResolved(ctx context.Context) (*deps, error) {
	d, err := setup()
	if err != nil {
		return nil, err
	}
	if err := d.resolver.Init(ctx); err != nil {
		return nil, err
	}
	return d, nil
}
