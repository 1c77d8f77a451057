package teaui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/schedule"
)

type fakeService struct {
	list grocery.List
}

func (f *fakeService) List(context.Context, string) (grocery.List, error) { return f.list, nil }
func (f *fakeService) Create(context.Context, string, string, grocery.Kind) error {
	return nil
}
func (f *fakeService) Update(context.Context, grocery.Item) error       { return nil }
func (f *fakeService) Delete(context.Context, string, string) error     { return nil }
func (f *fakeService) ClearChecked(context.Context, []grocery.Item) error { return nil }
func (f *fakeService) Magic(_ context.Context, _ string, l grocery.List, _ []grocery.StoreName) (grocery.List, error) {
	return l, nil
}
func (f *fakeService) Schedule(context.Context, string, []time.Time) error { return nil }

type fixedHousehold string

func (h fixedHousehold) EffectiveHouseholdID() string { return string(h) }

type memPrefs map[string]string

func (p memPrefs) Get(key string) (string, bool) { v, ok := p[key]; return v, ok }
func (p memPrefs) Set(key, value string) error   { p[key] = value; return nil }
func (p memPrefs) Delete(key string) error       { delete(p, key); return nil }

func seededModel(t *testing.T) Model {
	t.Helper()
	svc := &fakeService{list: grocery.List{
		Items: []grocery.Item{
			{ID: "a", Name: "milk", Kind: grocery.KindGrocery},
			{ID: "b", Name: "bread", Kind: grocery.KindGrocery, Checked: true},
			{ID: "t", Name: "bins", Kind: grocery.KindTask},
		},
		Layout: []grocery.LayoutBlock{
			{Type: grocery.BlockText, Value: "Dairy"},
			{Type: grocery.BlockItemID, Value: "a"},
			{Type: grocery.BlockItemID, Value: "b"},
			{Type: grocery.BlockItemID, Value: "t"},
		},
	}}
	store := liststore.New(svc, fixedHousehold("h1"), memPrefs{}, nil)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	m := New(store, 0)
	m.moveToFirstItem()
	return m
}

func TestCursorSkipsHeaders(t *testing.T) {
	m := seededModel(t)
	if m.cursor != 1 {
		t.Fatalf("first item should be past the header, cursor=%d", m.cursor)
	}
	m.moveCursor(-1)
	if m.cursor != 1 {
		t.Fatalf("cursor must not land on the header, cursor=%d", m.cursor)
	}
	m.moveCursor(1)
	if it := m.currentItem(); it == nil || it.ID != "b" {
		t.Fatalf("expected item b under cursor, got %+v", it)
	}
}

func TestTabSwitchesKind(t *testing.T) {
	m := seededModel(t)
	next, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	m = next.(Model)
	snap := m.store.Snapshot()
	if snap.Mode != grocery.KindTask {
		t.Fatalf("expected task mode after tab, got %v", snap.Mode)
	}
	if it := m.currentItem(); it == nil || it.Kind != grocery.KindTask {
		t.Fatalf("cursor should rest on a task, got %+v", it)
	}
}

func TestOpenCalendarOnlyForTasks(t *testing.T) {
	m := seededModel(t)

	it := m.currentItem()
	if it == nil || it.Kind != grocery.KindGrocery {
		t.Fatalf("setup: expected a grocery item under cursor")
	}
	next, _ := m.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	m = next.(Model)
	if m.mode == modeCalendar {
		t.Fatalf("calendar must not open on a grocery item")
	}

	snap := m.store.Snapshot()
	task := snap.List.Find("t")
	m.openCalendar(task)
	if m.mode != modeCalendar || m.calTaskID != "t" {
		t.Fatalf("calendar should target the task, mode=%d id=%q", m.mode, m.calTaskID)
	}
	if m.calDays == nil {
		t.Fatalf("calendar must start from an initialized day set")
	}
}

func TestCalendarToggleAndNavigation(t *testing.T) {
	m := seededModel(t)
	snap := m.store.Snapshot()
	task := snap.List.Find("t")
	m.openCalendar(task)
	m.calMonth = 0
	m.calDay = 0

	m.updateCalendar(tea.KeyPressMsg{Code: ' ', Text: " "}, nil)
	if !m.calDays.Contains(schedule.January, 0) {
		t.Fatalf("space should schedule the selected day")
	}
	m.updateCalendar(tea.KeyPressMsg{Code: ' ', Text: " "}, nil)
	if m.calDays.Contains(schedule.January, 0) {
		t.Fatalf("space again should unschedule it")
	}

	m.updateCalendar(tea.KeyPressMsg{Code: 'h', Text: "h"}, nil)
	if schedule.Months[m.calMonth] != schedule.December {
		t.Fatalf("h from January should wrap to December, got %v", schedule.Months[m.calMonth])
	}

	m.calMonth = 0
	m.calDay = 30 // Jan 31
	m.updateCalendar(tea.KeyPressMsg{Code: 'l', Text: "l"}, nil)
	if schedule.Months[m.calMonth] != schedule.February {
		t.Fatalf("l should advance to February")
	}
	if m.calDay >= schedule.DaysIn(schedule.February) {
		t.Fatalf("selected day must clamp to the shorter month, got %d", m.calDay)
	}
}

func TestFocusGatesPolling(t *testing.T) {
	m := seededModel(t)
	next, _ := m.Update(tea.BlurMsg{})
	m = next.(Model)
	if m.focused {
		t.Fatalf("blur should clear focus")
	}
	next, _ = m.Update(tea.FocusMsg{})
	m = next.(Model)
	if !m.focused {
		t.Fatalf("focus message should restore focus")
	}
}

func TestViewRendersRowsAndStatus(t *testing.T) {
	m := seededModel(t)
	out := m.View()
	for _, want := range []string{"Groceries", "Dairy", "milk", "bread"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}
