package domain

import "time"

// WorkoutHistoryEntry is the permanent record of a finished workout.
type WorkoutHistoryEntry struct {
	ID              string    `json:"id"`
	User            string    `json:"user"`
	WorkoutID       string    `json:"workout"`
	WorkoutName     string    `json:"workoutName"`
	PerformedAt     time.Time `json:"performedAt"`
	DurationSeconds int       `json:"durationSeconds"`
	TotalVolumeKg   float64   `json:"totalVolumeKg"`
	CompletedSets   int       `json:"completedSets"`
	Notes           string    `json:"notes,omitempty"`
	Created         time.Time `json:"created"`
	Updated         time.Time `json:"updated"`
}
