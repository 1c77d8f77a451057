package grocery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tableflip.dev/pantry/pkg/api"
	"tableflip.dev/pantry/pkg/schedule"
)

// Service is the repository client for grocery list operations. It is a thin
// pass-through over the backend; the list state lives in pkg/liststore.
type Service struct {
	client *api.Client
}

// NewService wraps the API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

type magicRequest struct {
	HouseholdID     string      `json:"householdId"`
	GroceryList     List        `json:"groceryList"`
	PreferredStores []StoreName `json:"preferredStores"`
}

type magicResponse struct {
	GroceryList List `json:"groceryList"`
}

type batchDeleteRequest struct {
	ItemsToDelete []Item `json:"itemsToDelete"`
}

type scheduleRequest struct {
	TaskID string   `json:"taskId"`
	Dates  []string `json:"dates"`
}

// List fetches the household's grocery list. The backend answers a 400 for a
// household with no items yet; that is an empty list, not a failure.
func (s *Service) List(ctx context.Context, householdID string) (List, error) {
	var list List
	err := s.client.Get(ctx, "/groceries/"+householdID, &list)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return List{Items: []Item{}, Layout: []LayoutBlock{}}, nil
		}
		return List{}, fmt.Errorf("fetch grocery list: %w", err)
	}
	return list, nil
}

// Create adds a new item of the given kind. The id is left empty; the
// backend assigns one.
func (s *Service) Create(ctx context.Context, householdID, name string, kind Kind) error {
	item := Item{
		HouseholdID: householdID,
		Name:        name,
		Kind:        kind,
	}
	if err := s.client.Put(ctx, "/groceries", item, nil); err != nil {
		return fmt.Errorf("create %s %q: %w", kind, name, err)
	}
	return nil
}

// Update writes back a mutated item, typically a checked toggle.
func (s *Service) Update(ctx context.Context, item Item) error {
	if err := s.client.Post(ctx, "/groceries", item, nil); err != nil {
		return fmt.Errorf("update item %s: %w", item.ID, err)
	}
	return nil
}

// Delete removes a single item.
func (s *Service) Delete(ctx context.Context, householdID, id string) error {
	if err := s.client.Delete(ctx, "/groceries/"+householdID+"/"+id); err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	return nil
}

// ClearChecked batch deletes every checked item. A list with nothing checked
// is a no-op with no network call.
func (s *Service) ClearChecked(ctx context.Context, items []Item) error {
	var checked []Item
	for _, item := range items {
		if item.Checked {
			checked = append(checked, item)
		}
	}
	if len(checked) == 0 {
		return nil
	}
	req := batchDeleteRequest{ItemsToDelete: checked}
	if err := s.client.Post(ctx, "/groceries/batchDelete", req, nil); err != nil {
		return fmt.Errorf("clear checked items: %w", err)
	}
	return nil
}

// Magic sends the fetched list to the reordering service. The response
// replaces the input wholesale; no local merge happens.
func (s *Service) Magic(ctx context.Context, householdID string, list List, preferred []StoreName) (List, error) {
	req := magicRequest{
		HouseholdID:     householdID,
		GroceryList:     list,
		PreferredStores: preferred,
	}
	var resp magicResponse
	if err := s.client.Post(ctx, "/groceries/magic", req, &resp); err != nil {
		return List{}, fmt.Errorf("magic reorder: %w", err)
	}
	return resp.GroceryList, nil
}

// Schedule persists the full set of scheduled dates for a task.
func (s *Service) Schedule(ctx context.Context, taskID string, dates []time.Time) error {
	req := scheduleRequest{TaskID: taskID, Dates: make([]string, 0, len(dates))}
	for _, d := range dates {
		req.Dates = append(req.Dates, schedule.FormatDate(d))
	}
	if err := s.client.Post(ctx, "/tasks/schedule", req, nil); err != nil {
		return fmt.Errorf("schedule task %s: %w", taskID, err)
	}
	return nil
}
