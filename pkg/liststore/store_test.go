package liststore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/prefs"
	"tableflip.dev/pantry/pkg/schedule"
)

type memPrefs struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemPrefs() *memPrefs {
	return &memPrefs{m: map[string]string{}}
}

func (p *memPrefs) Get(key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v, ok := p.m[key]
	return v, ok
}

func (p *memPrefs) Set(key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[key] = value
	return nil
}

func (p *memPrefs) Delete(key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.m, key)
	return nil
}

type fakeService struct {
	mu           sync.Mutex
	listCalls    int
	magicCalls   int
	createCalls  int
	clearCalls   int
	updateCalls  []grocery.Item
	updated      chan grocery.Item
	deleted      []string
	scheduled    []time.Time
	scheduledFor string

	listResult  grocery.List
	magicResult grocery.List
	listErr     error
	magicErr    error
	updateErr   error
	clearErr    error
	createErr   error
	deleteErr   error

	listGate chan struct{}
}

func (f *fakeService) List(_ context.Context, householdID string) (grocery.List, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if f.listErr != nil {
		return grocery.List{}, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeService) Create(_ context.Context, householdID, name string, kind grocery.Kind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	return f.createErr
}

func (f *fakeService) Update(_ context.Context, item grocery.Item) error {
	f.mu.Lock()
	f.updateCalls = append(f.updateCalls, item)
	f.mu.Unlock()
	if f.updated != nil {
		f.updated <- item
	}
	return f.updateErr
}

func (f *fakeService) Delete(_ context.Context, householdID, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeService) ClearChecked(_ context.Context, items []grocery.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	return f.clearErr
}

func (f *fakeService) Magic(_ context.Context, householdID string, list grocery.List, preferred []grocery.StoreName) (grocery.List, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.magicCalls++
	if f.magicErr != nil {
		return grocery.List{}, f.magicErr
	}
	return f.magicResult, nil
}

func (f *fakeService) Schedule(_ context.Context, taskID string, dates []time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduledFor = taskID
	f.scheduled = dates
	return nil
}

type fixedHousehold string

func (h fixedHousehold) EffectiveHouseholdID() string { return string(h) }

func newTestStore(svc *fakeService) *Store {
	return New(svc, fixedHousehold("h1"), newMemPrefs(), nil)
}

func TestRefreshStoresMagicResponseVerbatim(t *testing.T) {
	raw := grocery.List{Items: []grocery.Item{{ID: "a", Kind: grocery.KindGrocery}}}
	reordered := grocery.List{
		Items: []grocery.Item{{ID: "a", Kind: grocery.KindGrocery}},
		Layout: []grocery.LayoutBlock{
			{Type: grocery.BlockText, Value: "Produce"},
			{Type: grocery.BlockItemID, Value: "a"},
		},
	}
	svc := &fakeService{listResult: raw, magicResult: reordered}
	s := newTestStore(svc)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if len(snap.List.Layout) != 2 || snap.List.Layout[0].Value != "Produce" {
		t.Fatalf("expected magic response stored verbatim, got %+v", snap.List.Layout)
	}
	if svc.magicCalls != 1 {
		t.Fatalf("expected one magic call, got %d", svc.magicCalls)
	}
}

func TestRefreshMagicDisabledSkipsMagic(t *testing.T) {
	svc := &fakeService{listResult: grocery.List{Items: []grocery.Item{{ID: "a"}}}}
	p := newMemPrefs()
	_ = prefs.SetBool(p, prefs.MagicEnabledKey, false)
	s := New(svc, fixedHousehold("h1"), p, nil)

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.magicCalls != 0 {
		t.Fatalf("magic disabled but called %d times", svc.magicCalls)
	}
}

func TestRefreshMagicFailureAbortsAndKeepsOldList(t *testing.T) {
	svc := &fakeService{
		listResult:  grocery.List{Items: []grocery.Item{{ID: "old"}}},
		magicResult: grocery.List{Items: []grocery.Item{{ID: "old"}}},
	}
	s := newTestStore(svc)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}

	svc.mu.Lock()
	svc.listResult = grocery.List{Items: []grocery.Item{{ID: "new"}}}
	svc.magicErr = errors.New("magic down")
	svc.mu.Unlock()

	if err := s.Refresh(context.Background()); err == nil {
		t.Fatalf("expected refresh to propagate the magic failure")
	}
	snap := s.Snapshot()
	if len(snap.List.Items) != 1 || snap.List.Items[0].ID != "old" {
		t.Fatalf("failed refresh must leave previous list, got %+v", snap.List.Items)
	}
	if snap.Fetching {
		t.Fatalf("fetching flag must be released on failure")
	}
}

func TestConcurrentRefreshIsDropped(t *testing.T) {
	gate := make(chan struct{})
	svc := &fakeService{listGate: gate}
	s := newTestStore(svc)

	done := make(chan error, 1)
	go func() { done <- s.Refresh(context.Background()) }()

	// Wait until the first refresh is blocked inside List.
	deadline := time.After(time.Second)
	for {
		svc.mu.Lock()
		calls := svc.listCalls
		svc.mu.Unlock()
		if calls == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("first refresh never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("dropped refresh must not error, got %v", err)
	}
	svc.mu.Lock()
	calls := svc.listCalls
	svc.mu.Unlock()
	if calls != 1 {
		t.Fatalf("second refresh must not hit the network, got %d calls", calls)
	}

	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
}

func TestCheckIsOptimisticWithoutRollback(t *testing.T) {
	svc := &fakeService{
		listResult: grocery.List{Items: []grocery.Item{{ID: "a", Kind: grocery.KindGrocery}}},
		magicResult: grocery.List{
			Items:  []grocery.Item{{ID: "a", Kind: grocery.KindGrocery}},
			Layout: []grocery.LayoutBlock{{Type: grocery.BlockItemID, Value: "a"}},
		},
		updateErr: errors.New("backend down"),
	}
	s := newTestStore(svc)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.Check("a")
	if !s.Snapshot().List.Items[0].Checked {
		t.Fatalf("check must flip locally before the update resolves")
	}

	s.Flush()
	svc.mu.Lock()
	updates := len(svc.updateCalls)
	svc.mu.Unlock()
	if updates != 1 {
		t.Fatalf("expected exactly one update call, got %d", updates)
	}
	if !s.Snapshot().List.Items[0].Checked {
		t.Fatalf("failed update must not revert the local flip")
	}
}

func TestCheckUnknownIDIsNoop(t *testing.T) {
	svc := &fakeService{}
	s := newTestStore(svc)
	s.Check("missing")
	s.Flush()
	if len(svc.updateCalls) != 0 {
		t.Fatalf("unknown id must not trigger an update")
	}
}

func TestClearCheckedReleasesUpdatingFlagOnFailure(t *testing.T) {
	svc := &fakeService{clearErr: errors.New("boom")}
	s := newTestStore(svc)
	if err := s.ClearChecked(context.Background()); err == nil {
		t.Fatalf("expected failure to propagate")
	}
	if s.Snapshot().Updating {
		t.Fatalf("updating flag must be released on failure")
	}
}

func TestRemoveDeletesByIDAndRefetches(t *testing.T) {
	svc := &fakeService{
		listResult:  grocery.List{Items: []grocery.Item{{ID: "a", HouseholdID: "h1"}}},
		magicResult: grocery.List{Items: []grocery.Item{{ID: "a", HouseholdID: "h1"}}},
	}
	s := newTestStore(svc)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("seed refresh failed: %v", err)
	}

	if err := s.Remove(context.Background(), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != "a" {
		t.Fatalf("expected delete of a, got %v", svc.deleted)
	}
	if svc.listCalls != 2 {
		t.Fatalf("remove must refetch, got %d list calls", svc.listCalls)
	}

	if err := s.Remove(context.Background(), "missing"); err != nil {
		t.Fatalf("unknown id must be a no-op, got %v", err)
	}
	if len(svc.deleted) != 1 {
		t.Fatalf("unknown id must not reach the backend, got %v", svc.deleted)
	}
}

func TestCreateEmptyInputIsNoop(t *testing.T) {
	svc := &fakeService{}
	s := newTestStore(svc)
	if err := s.Create(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.createCalls != 0 || svc.listCalls != 0 {
		t.Fatalf("empty input must make no calls, got create=%d list=%d", svc.createCalls, svc.listCalls)
	}
}

func TestCreateClearsInputAfterRefetch(t *testing.T) {
	svc := &fakeService{
		listResult:  grocery.List{Items: []grocery.Item{{ID: "a"}}},
		magicResult: grocery.List{Items: []grocery.Item{{ID: "a"}}},
	}
	s := newTestStore(svc)
	s.SetInput("milk")
	if err := s.Create(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Input != "" {
		t.Fatalf("input should clear after create, got %q", snap.Input)
	}
	if svc.createCalls != 1 || svc.listCalls != 1 {
		t.Fatalf("expected create then refetch, got create=%d list=%d", svc.createCalls, svc.listCalls)
	}
}

func TestCreateFailureKeepsInput(t *testing.T) {
	svc := &fakeService{createErr: errors.New("boom")}
	s := newTestStore(svc)
	s.SetInput("milk")
	if err := s.Create(context.Background()); err == nil {
		t.Fatalf("expected create failure")
	}
	if s.Snapshot().Input != "milk" {
		t.Fatalf("input must survive a failed create")
	}
}

func TestToggleMagicPersistsAndRefetches(t *testing.T) {
	svc := &fakeService{}
	p := newMemPrefs()
	s := New(svc, fixedHousehold("h1"), p, nil)

	if err := s.ToggleMagic(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().MagicEnabled {
		t.Fatalf("magic should now be off")
	}
	if stored, ok := prefs.GetBool(p, prefs.MagicEnabledKey); !ok || stored {
		t.Fatalf("magic flag not persisted, got %v ok=%v", stored, ok)
	}
	if svc.listCalls != 1 {
		t.Fatalf("toggle must refetch, got %d calls", svc.listCalls)
	}
}

func TestToggleStorePersistsSelection(t *testing.T) {
	svc := &fakeService{}
	p := newMemPrefs()
	s := New(svc, fixedHousehold("h1"), p, nil)

	if err := s.ToggleStore(context.Background(), grocery.StoreAldi); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	for _, st := range snap.SelectedStores {
		if st == grocery.StoreAldi {
			t.Fatalf("aldi should have been removed, got %v", snap.SelectedStores)
		}
	}
	stored, ok := prefs.GetStrings(p, prefs.SelectedStoresKey)
	if !ok || len(stored) != len(grocery.AllStores)-1 {
		t.Fatalf("selection not persisted: %v ok=%v", stored, ok)
	}

	if err := s.ToggleStore(context.Background(), grocery.StoreAldi); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(s.Snapshot().SelectedStores); got != len(grocery.AllStores) {
		t.Fatalf("toggle back should restore the store, got %d", got)
	}
}

func TestSnapshotFiltersByMode(t *testing.T) {
	svc := &fakeService{
		listResult: grocery.List{Items: []grocery.Item{
			{ID: "a", Kind: grocery.KindGrocery},
			{ID: "b", Kind: grocery.KindTask},
		}},
		magicResult: grocery.List{Items: []grocery.Item{
			{ID: "a", Kind: grocery.KindGrocery},
			{ID: "b", Kind: grocery.KindTask},
		}},
	}
	s := newTestStore(svc)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().Filtered.Items; len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("grocery mode should keep only groceries, got %+v", got)
	}
	s.SetMode(grocery.KindTask)
	if got := s.Snapshot().Filtered.Items; len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("task mode should keep only tasks, got %+v", got)
	}
}

func TestSubscribeFiresOnMutation(t *testing.T) {
	svc := &fakeService{}
	s := newTestStore(svc)
	fired := 0
	s.Subscribe(func() { fired++ })
	s.SetInput("x")
	if fired == 0 {
		t.Fatalf("subscriber should fire on mutation")
	}
}

func TestSaveScheduledDaysExpandsToDates(t *testing.T) {
	svc := &fakeService{}
	s := newTestStore(svc)

	days := schedule.Empty().Toggle(schedule.March, 3)
	if err := s.SaveScheduledDays(context.Background(), "t1", days); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.scheduledFor != "t1" || len(svc.scheduled) != 1 {
		t.Fatalf("unexpected schedule call: %q %v", svc.scheduledFor, svc.scheduled)
	}
	got := svc.scheduled[0]
	if got.Month() != time.March || got.Day() != 4 {
		t.Fatalf("expected March 4, got %v", got)
	}
	if got.Year() != time.Now().Year() {
		t.Fatalf("expected current year, got %d", got.Year())
	}
}
