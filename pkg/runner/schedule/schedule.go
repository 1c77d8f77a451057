package schedule

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/pantry/pkg/grocery"
	"tableflip.dev/pantry/pkg/liststore"
	"tableflip.dev/pantry/pkg/printers"
	sched "tableflip.dev/pantry/pkg/schedule"
)

// Schedule shows or replaces the scheduled days of a task. Dates replace the
// task's whole schedule; with no dates the current schedule is printed.
type Schedule struct {
	Query string
	Dates []string

	Store *liststore.Store
}

func (n *Schedule) Do(ctx context.Context) error {
	if err := n.Store.Refresh(ctx); err != nil {
		return err
	}

	task := n.findTask()
	if task == nil {
		return fmt.Errorf("no task matching %q", n.Query)
	}

	pp := printers.PrettyPrint{}

	if len(n.Dates) == 0 {
		pp.Title(task.Name)
		pp.Schedule(task.ScheduledDays, false)
		return nil
	}

	dates := make([]time.Time, 0, len(n.Dates))
	for _, raw := range n.Dates {
		t, err := sched.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("bad date %q: %w", raw, err)
		}
		dates = append(dates, t)
	}

	if err := n.Store.SaveScheduledDays(ctx, task.ID, sched.FromDates(dates)); err != nil {
		return err
	}

	if task = n.findTask(); task == nil {
		return nil
	}
	pp.Title(task.Name)
	pp.Schedule(task.ScheduledDays, false)
	return nil
}

func (n *Schedule) findTask() *grocery.Item {
	snap := n.Store.Snapshot()
	if item := snap.List.Find(n.Query); item != nil && item.Kind == grocery.KindTask {
		return item
	}
	for i := range snap.List.Items {
		item := &snap.List.Items[i]
		if item.Kind == grocery.KindTask && strings.EqualFold(item.Name, n.Query) {
			return item
		}
	}
	return nil
}
