// Package liststore holds the observable grocery-list state shared by the
// CLI runners and the interactive UI.
package liststore

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/prefs"
	"tableflip.dev/pantry/pkg/schedule"
)

// ListService is the repository surface the store drives.
type ListService interface {
	List(ctx context.Context, householdID string) (grocery.List, error)
	Create(ctx context.Context, householdID, name string, kind grocery.Kind) error
	Update(ctx context.Context, item grocery.Item) error
	Delete(ctx context.Context, householdID, id string) error
	ClearChecked(ctx context.Context, items []grocery.Item) error
	Magic(ctx context.Context, householdID string, list grocery.List, preferred []grocery.StoreName) (grocery.List, error)
	Schedule(ctx context.Context, taskID string, dates []time.Time) error
}

// Households resolves the household id scoping every operation.
type Households interface {
	EffectiveHouseholdID() string
}

// Snapshot is the read model handed to views. Filtered is the list restricted
// to the current mode.
type Snapshot struct {
	Mode           grocery.Kind
	List           grocery.List
	Filtered       grocery.List
	Input          string
	Fetching       bool
	Updating       bool
	MagicEnabled   bool
	SelectedStores []grocery.StoreName
}

// Store is the grocery-list state container. Mutations notify subscribers;
// derived views are recomputed on read. All methods are safe for concurrent
// use, though the intended callers are a single UI loop plus its poll timer.
type Store struct {
	svc        ListService
	households Households
	prefs      prefs.Store
	logger     *slog.Logger

	mu             sync.Mutex
	mode           grocery.Kind
	list           grocery.List
	input          string
	magicEnabled   bool
	selectedStores []grocery.StoreName
	fetching       bool
	updating       bool
	subs           []func()

	updates sync.WaitGroup
}

// New builds a Store, restoring the magic flag and store selection from the
// preference store. Magic defaults to on; the store selection defaults to
// every known store.
func New(svc ListService, households Households, p prefs.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		svc:          svc,
		households:   households,
		prefs:        p,
		logger:       logger,
		mode:         grocery.KindGrocery,
		magicEnabled: true,
	}
	if enabled, ok := prefs.GetBool(p, prefs.MagicEnabledKey); ok {
		s.magicEnabled = enabled
	}
	s.selectedStores = storedSelectedStores(p)
	return s
}

func storedSelectedStores(p prefs.Store) []grocery.StoreName {
	raw, ok := prefs.GetStrings(p, prefs.SelectedStoresKey)
	if !ok {
		return append([]grocery.StoreName(nil), grocery.AllStores...)
	}
	out := make([]grocery.StoreName, 0, len(raw))
	for _, name := range raw {
		out = append(out, grocery.StoreName(name))
	}
	return out
}

// Subscribe registers a callback fired after every state change. Callbacks
// run on the mutating goroutine and must not call back into the store.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := append(([]func())(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Snapshot returns a copy of the current state with the mode filter applied.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Mode:           s.mode,
		List:           s.list,
		Filtered:       s.list.FilterKind(s.mode),
		Input:          s.input,
		Fetching:       s.fetching,
		Updating:       s.updating,
		MagicEnabled:   s.magicEnabled,
		SelectedStores: append([]grocery.StoreName(nil), s.selectedStores...),
	}
}

// SetMode switches the kind filter.
func (s *Store) SetMode(mode grocery.Kind) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	s.notify()
}

// SetInput replaces the create input buffer.
func (s *Store) SetInput(text string) {
	s.mu.Lock()
	s.input = text
	s.mu.Unlock()
	s.notify()
}

// Refresh fetches the list, applies the magic reorder when enabled, and
// replaces the held list wholesale. At most one refresh runs at a time; a
// refresh arriving while one is in flight is dropped, not queued. A magic
// failure aborts the whole refresh and leaves the previous list in place.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return nil
	}
	s.fetching = true
	magic := s.magicEnabled
	stores := append([]grocery.StoreName(nil), s.selectedStores...)
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.fetching = false
		s.mu.Unlock()
		s.notify()
	}()

	householdID := s.households.EffectiveHouseholdID()
	list, err := s.svc.List(ctx, householdID)
	if err != nil {
		return err
	}
	if magic {
		list, err = s.svc.Magic(ctx, householdID, list, stores)
		if err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.list = list
	s.mu.Unlock()
	return nil
}

// Create submits the input buffer as a new item of the current mode. An
// empty buffer is a no-op. The buffer clears only after the create and the
// following refresh both succeed; there is no optimistic insert.
func (s *Store) Create(ctx context.Context) error {
	s.mu.Lock()
	text := s.input
	mode := s.mode
	s.mu.Unlock()
	if text == "" {
		return nil
	}

	householdID := s.households.EffectiveHouseholdID()
	if err := s.svc.Create(ctx, householdID, text, mode); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.input = ""
	s.mu.Unlock()
	s.notify()
	return nil
}

// AddItems creates several grocery items in one intent, one create call per
// name. Failures are collected; successful creates stand.
func (s *Store) AddItems(ctx context.Context, names []string) error {
	householdID := s.households.EffectiveHouseholdID()
	var errs []error
	for _, name := range names {
		if name == "" {
			continue
		}
		if err := s.svc.Create(ctx, householdID, name, grocery.KindGrocery); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Check flips the item's checked flag locally and fires the backend update
// without awaiting it. A failed update is logged and dropped; the local flip
// is not rolled back.
func (s *Store) Check(id string) {
	s.mu.Lock()
	item := s.list.Find(id)
	if item == nil {
		s.mu.Unlock()
		return
	}
	item.Checked = !item.Checked
	updated := *item
	s.mu.Unlock()
	s.notify()

	s.updates.Add(1)
	go func() {
		defer s.updates.Done()
		if err := s.svc.Update(context.Background(), updated); err != nil {
			s.logger.Error("update grocery item", "id", updated.ID, "error", err)
		}
	}()
}

// Remove deletes a single item by id and refetches.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	item := s.list.Find(id)
	if item == nil {
		s.mu.Unlock()
		return nil
	}
	householdID := item.HouseholdID
	s.mu.Unlock()
	if householdID == "" {
		householdID = s.households.EffectiveHouseholdID()
	}

	if err := s.svc.Delete(ctx, householdID, id); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Flush waits for in-flight fire-and-forget updates. One-shot callers use it
// before exiting.
func (s *Store) Flush() {
	s.updates.Wait()
}

// ClearChecked batch deletes every checked item and refetches. The updating
// flag is released even when the call fails.
func (s *Store) ClearChecked(ctx context.Context) error {
	s.mu.Lock()
	s.updating = true
	items := append([]grocery.Item(nil), s.list.Items...)
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.updating = false
		s.mu.Unlock()
		s.notify()
	}()

	if err := s.svc.ClearChecked(ctx, items); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ToggleStore flips a store's membership in the preferred set, persists the
// selection, and refetches since the magic reorder depends on it.
func (s *Store) ToggleStore(ctx context.Context, name grocery.StoreName) error {
	s.mu.Lock()
	found := false
	kept := make([]grocery.StoreName, 0, len(s.selectedStores))
	for _, st := range s.selectedStores {
		if st == name {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		kept = append(kept, name)
	}
	s.selectedStores = kept

	raw := make([]string, len(kept))
	for i, st := range kept {
		raw[i] = string(st)
	}
	s.mu.Unlock()
	s.notify()

	if err := prefs.SetStrings(s.prefs, prefs.SelectedStoresKey, raw); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ToggleMagic flips the magic flag, persists it, and refetches.
func (s *Store) ToggleMagic(ctx context.Context) error {
	s.mu.Lock()
	s.magicEnabled = !s.magicEnabled
	enabled := s.magicEnabled
	s.mu.Unlock()
	s.notify()

	if err := prefs.SetBool(s.prefs, prefs.MagicEnabledKey, enabled); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// SaveScheduledDays persists a task's full per-month mapping, expanded to
// flat dates in the current year, then refetches.
func (s *Store) SaveScheduledDays(ctx context.Context, taskID string, days schedule.Days) error {
	if err := s.svc.Schedule(ctx, taskID, days.Dates(time.Now().Year())); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
