// Package household resolves the user identity and household membership that
// scope every grocery operation.
package household

import (
	"context"
	"fmt"

	"tableflip.dev/pantry/pkg/api"
)

// User is the backend's user record.
type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	HouseholdIDs []string `json:"householdIds"`
}

// Directory is the remote user/household surface the Resolver depends on.
type Directory interface {
	CreateUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateHousehold(ctx context.Context) (string, error)
	JoinHousehold(ctx context.Context, householdID, userID string) error
	LeaveHousehold(ctx context.Context, householdID, userID string) error
}

// Service implements Directory over the REST client.
type Service struct {
	client *api.Client
}

// NewService wraps the API client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// CreateUser registers a new anonymous user.
func (s *Service) CreateUser(ctx context.Context) (User, error) {
	var user User
	if err := s.client.Put(ctx, "/users", nil, &user); err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUser fetches a user with its household memberships.
func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	if err := s.client.Get(ctx, "/users/"+id, &user); err != nil {
		return User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

type createHouseholdResponse struct {
	HouseholdID string `json:"householdId"`
}

// CreateHousehold makes a new shared household and returns its id.
func (s *Service) CreateHousehold(ctx context.Context) (string, error) {
	var resp createHouseholdResponse
	if err := s.client.Put(ctx, "/households", nil, &resp); err != nil {
		return "", fmt.Errorf("create household: %w", err)
	}
	return resp.HouseholdID, nil
}

// JoinHousehold adds the user to the household.
func (s *Service) JoinHousehold(ctx context.Context, householdID, userID string) error {
	path := "/households/join/" + householdID + "/" + userID
	if err := s.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("join household %s: %w", householdID, err)
	}
	return nil
}

// LeaveHousehold removes the user from the household.
func (s *Service) LeaveHousehold(ctx context.Context, householdID, userID string) error {
	path := "/households/leave/" + householdID + "/" + userID
	if err := s.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("leave household %s: %w", householdID, err)
	}
	return nil
}
