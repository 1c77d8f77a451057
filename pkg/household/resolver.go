package household

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"

	"github.com/google/uuid"

	"tableflip.dev/pantry/pkg/prefs"
)

// DefaultHouseholdID scopes grocery data before any user identity exists.
const DefaultHouseholdID = "1"

// ErrUserNotCreated signals that an operation requiring a user identity ran
// before the identity resolution sequence produced one.
var ErrUserNotCreated = errors.New("household: user not yet created")

// ErrInvalidJoinID signals a join identifier that is not a v4 UUID.
var ErrInvalidJoinID = errors.New("household: join id is not a valid household id")

var joinURLPattern = regexp.MustCompile(`/households/join/([0-9a-fA-F-]{36})`)

// ParseJoinID extracts a household id from either a raw identifier or a full
// join URL, and validates it as a version-4 UUID. Validation failures are
// local; no network call is made.
func ParseJoinID(raw string) (string, error) {
	id := raw
	if m := joinURLPattern.FindStringSubmatch(raw); m != nil {
		id = m[1]
	}
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.Version() != 4 {
		return "", ErrInvalidJoinID
	}
	return id, nil
}

// Resolver owns the user identity and current household membership. The user
// id persists across runs; household membership is re-resolved from the
// backend on startup.
type Resolver struct {
	directory Directory
	prefs     prefs.Store

	mu          sync.Mutex
	userID      string
	householdID string
	loading     bool
}

// NewResolver builds a Resolver around the directory and preference store.
func NewResolver(directory Directory, p prefs.Store) *Resolver {
	return &Resolver{directory: directory, prefs: p}
}

// EffectiveHouseholdID falls through three tiers: the joined household, the
// synthetic per-user household, then the global default.
func (r *Resolver) EffectiveHouseholdID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.householdID != "" {
		return r.householdID
	}
	if r.userID != "" {
		return "USER-" + r.userID
	}
	return DefaultHouseholdID
}

// UserID returns the resolved user id, empty before Init.
func (r *Resolver) UserID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.userID
}

// HouseholdID returns the joined household id, empty when not in one.
func (r *Resolver) HouseholdID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.householdID
}

// Loading reports whether an identity operation is in flight.
func (r *Resolver) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

func (r *Resolver) setLoading(v bool) {
	r.mu.Lock()
	r.loading = v
	r.mu.Unlock()
}

// Init resolves the identity: a persisted user id is looked up and its first
// household adopted; otherwise a fresh user is created and persisted.
func (r *Resolver) Init(ctx context.Context) error {
	if stored, ok := r.prefs.Get(prefs.UserIDKey); ok && stored != "" {
		r.mu.Lock()
		r.userID = stored
		r.mu.Unlock()

		user, err := r.directory.GetUser(ctx, stored)
		if err != nil {
			return err
		}
		if len(user.HouseholdIDs) > 0 {
			r.mu.Lock()
			r.householdID = user.HouseholdIDs[0]
			r.mu.Unlock()
		}
		return nil
	}
	return r.createUser(ctx)
}

func (r *Resolver) createUser(ctx context.Context) error {
	r.setLoading(true)
	defer r.setLoading(false)

	user, err := r.directory.CreateUser(ctx)
	if err != nil {
		return err
	}
	if user.ID == "" {
		return fmt.Errorf("%w: backend returned an empty id", ErrUserNotCreated)
	}
	if err := r.prefs.Set(prefs.UserIDKey, user.ID); err != nil {
		return fmt.Errorf("persist user id: %w", err)
	}
	r.mu.Lock()
	r.userID = user.ID
	r.mu.Unlock()
	return nil
}

func (r *Resolver) requireUserID(ctx context.Context) (string, error) {
	if id := r.UserID(); id != "" {
		return id, nil
	}
	if err := r.Init(ctx); err != nil {
		return "", err
	}
	if id := r.UserID(); id != "" {
		return id, nil
	}
	return "", ErrUserNotCreated
}

// CreateAndJoin makes a new household and joins it. The user must already be
// resolved; anything else is a sequencing bug surfaced to the caller.
func (r *Resolver) CreateAndJoin(ctx context.Context) (string, error) {
	r.setLoading(true)
	defer r.setLoading(false)

	userID := r.UserID()
	if userID == "" {
		return "", ErrUserNotCreated
	}

	householdID, err := r.directory.CreateHousehold(ctx)
	if err != nil {
		return "", err
	}
	if err := r.directory.JoinHousehold(ctx, householdID, userID); err != nil {
		return "", err
	}
	r.mu.Lock()
	r.householdID = householdID
	r.mu.Unlock()
	return householdID, nil
}

// Join validates the raw identifier (or join URL) and joins the household.
func (r *Resolver) Join(ctx context.Context, raw string) error {
	householdID, err := ParseJoinID(raw)
	if err != nil {
		return err
	}
	userID, err := r.requireUserID(ctx)
	if err != nil {
		return err
	}
	if err := r.directory.JoinHousehold(ctx, householdID, userID); err != nil {
		return err
	}
	r.mu.Lock()
	r.householdID = householdID
	r.mu.Unlock()
	return nil
}

// Leave drops the current household membership and re-resolves the identity.
// Without a household it is a no-op.
func (r *Resolver) Leave(ctx context.Context) error {
	r.mu.Lock()
	householdID := r.householdID
	r.mu.Unlock()
	if householdID == "" {
		return nil
	}

	userID, err := r.requireUserID(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.householdID = ""
	r.mu.Unlock()

	if err := r.directory.LeaveHousehold(ctx, householdID, userID); err != nil {
		return err
	}
	return r.Init(ctx)
}
