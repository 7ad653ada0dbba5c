package domain

import "time"

// Filters are immutable value types: two filters compare equal when all
// fields are equal, so a filter can key the controller that serves it.
// Time bounds use zero values (not pointers) to keep comparability.

// ExerciseFilter narrows the exercise library listing.
type ExerciseFilter struct {
	Search      string
	MuscleGroup string
}

// WorkoutFilter narrows the workout listing.
type WorkoutFilter struct {
	Search string
}

// PlanFilter narrows the workout plan listing.
type PlanFilter struct {
	Search     string
	ActiveOnly bool
}

// SessionFilter narrows the session listing.
type SessionFilter struct {
	WorkoutID string
	Status    SessionStatus
	From      time.Time
	To        time.Time
}

// HistoryFilter narrows the history listing.
type HistoryFilter struct {
	WorkoutID string
	From      time.Time
	To        time.Time
}
