// Package grocery models the shared household grocery list: the unordered
// item set, the ordered render layout, and the derived views the UIs consume.
package grocery

import "tableflip.dev/pantry/pkg/schedule"

// Kind discriminates the two item variants. It never changes after creation.
type Kind string

const (
	KindGrocery Kind = "Grocery"
	KindTask    Kind = "Task"
)

// StoreName names one of the known stores the magic service prices against.
type StoreName string

const (
	StoreAldi     StoreName = "aldi"
	StoreColes    StoreName = "coles"
	StoreWoolies  StoreName = "woolies"
	StoreSamCocos StoreName = "sam cocos"
)

// AllStores is the closed set of store names, in default preference order.
var AllStores = []StoreName{StoreAldi, StoreColes, StoreWoolies, StoreSamCocos}

// Item is a grocery item or task. The id is assigned by the backend and is
// empty before creation.
type Item struct {
	HouseholdID   string        `json:"householdId"`
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Kind          Kind          `json:"kind"`
	Checked       bool          `json:"checked"`
	ScheduledDays schedule.Days `json:"scheduledDays,omitempty"`
}

// ScheduleEntry is the flat representation of one scheduled calendar date
// for a task, as exchanged with the backend.
type ScheduleEntry struct {
	TaskID string `json:"taskId"`
	Date   string `json:"date"`
}
