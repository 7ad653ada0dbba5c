package domain

import "time"

// Exercise represents a single exercise definition in the user's library.
type Exercise struct {
	ID          string    `json:"id"`
	User        string    `json:"user"` // owning user record id
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup,omitempty"` // e.g. "Chest", "Legs", "Back"
	Description string    `json:"description,omitempty"`
	DefaultSets int       `json:"defaultSets,omitempty"`
	DefaultReps int       `json:"defaultReps,omitempty"`
	RestSeconds int       `json:"restSeconds,omitempty"` // default rest between sets
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}
