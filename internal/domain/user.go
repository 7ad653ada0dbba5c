package domain

import "time"

// User represents the authenticated account record returned by the backend.
type User struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Username string    `json:"username,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Persisted reports whether the user has been stored by the backend.
// An empty ID is only ever valid for a record that was never saved.
func (u User) Persisted() bool {
	return u.ID != ""
}
