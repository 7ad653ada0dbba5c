package domain

import "time"

// WorkoutExercise is one prescribed exercise inside a workout: which
// exercise, and the planned sets/reps/load for it.
type WorkoutExercise struct {
	ExerciseID  string  `json:"exerciseId"`
	Name        string  `json:"name"` // denormalized for display without an extra fetch
	Sets        int     `json:"sets"`
	Reps        int     `json:"reps"`
	WeightKg    float64 `json:"weightKg,omitempty"` // always stored metric; converted for display only
	RestSeconds int     `json:"restSeconds,omitempty"`
}

// Workout is a reusable workout template composed of ordered exercises.
type Workout struct {
	ID        string            `json:"id"`
	User      string            `json:"user"`
	Name      string            `json:"name"`
	Notes     string            `json:"notes,omitempty"`
	Exercises []WorkoutExercise `json:"exercises"`
	Created   time.Time         `json:"created"`
	Updated   time.Time         `json:"updated"`
}

// TotalSets returns the number of prescribed sets across all exercises.
func (w Workout) TotalSets() int {
	total := 0
	for _, ex := range w.Exercises {
		total += ex.Sets
	}
	return total
}
