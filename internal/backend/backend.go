package backend

import (
	"context"
	"encoding/json"

	"periolifts/fitness-client/internal/domain"
)

// Collection names as defined by the hosted backend schema.
const (
	CollectionUsers     = "users"
	CollectionExercises = "exercises"
	CollectionWorkouts  = "workouts"
	CollectionPlans     = "workout_plans"
	CollectionSessions  = "workout_sessions"
	CollectionHistory   = "workout_history"
)

// ListOptions parameterize a paginated list call.
type ListOptions struct {
	Page    int
	PerPage int
	Filter  string // backend-side filter expression
	Sort    string // e.g. "-created", "+name"
	Expand  string
}

// RecordList is one page of raw records plus the pagination envelope.
type RecordList struct {
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	TotalItems int               `json:"totalItems"`
	TotalPages int               `json:"totalPages"`
	Items      []json.RawMessage `json:"items"`
}

// AuthResult is the outcome of a successful authentication call.
type AuthResult struct {
	Token string
	User  domain.User
}

// Client is the capability interface both concrete backends (PocketBase,
// Appwrite) implement. Services depend on this, never on a concrete client;
// the implementation is chosen once, at composition time.
type Client interface {
	// AuthWithPassword authenticates with an email/username and password and
	// stores the resulting token in the auth store.
	AuthWithPassword(ctx context.Context, identity, password string) (*AuthResult, error)
	// Register creates a new user account. It does not authenticate.
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	// Logout clears the auth store. Purely local; hosted tokens are stateless.
	Logout()

	List(ctx context.Context, collection string, opts ListOptions) (*RecordList, error)
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	Create(ctx context.Context, collection string, body any) (json.RawMessage, error)
	Update(ctx context.Context, collection, id string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error

	AuthStore() *AuthStore
}
