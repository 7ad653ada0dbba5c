package domain

import "time"

// SessionStatus tracks the lifecycle of a workout session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionAbandoned  SessionStatus = "abandoned"
)

// SetResult records one performed set.
type SetResult struct {
	Reps     int     `json:"reps"`
	WeightKg float64 `json:"weightKg,omitempty"`
	Done     bool    `json:"done"`
}

// SessionExercise carries the per-set results for one exercise of a session.
type SessionExercise struct {
	ExerciseID string      `json:"exerciseId"`
	Name       string      `json:"name"`
	Skipped    bool        `json:"skipped,omitempty"`
	Sets       []SetResult `json:"sets"`
}

// WorkoutSession is a single run of a workout, in progress or finished.
type WorkoutSession struct {
	ID          string            `json:"id"`
	User        string            `json:"user"`
	WorkoutID   string            `json:"workout"`
	WorkoutName string            `json:"workoutName"`
	Status      SessionStatus     `json:"status"`
	Exercises   []SessionExercise `json:"exercises"`
	StartedAt   time.Time         `json:"startedAt"`
	CompletedAt *time.Time        `json:"completedAt,omitempty"`
	Created     time.Time         `json:"created"`
	Updated     time.Time         `json:"updated"`
}

// CompletedSets counts the sets marked done across all exercises.
func (s WorkoutSession) CompletedSets() int {
	count := 0
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			if set.Done {
				count++
			}
		}
	}
	return count
}

// TotalVolumeKg sums reps x weight over all completed sets.
func (s WorkoutSession) TotalVolumeKg() float64 {
	volume := 0.0
	for _, ex := range s.Exercises {
		for _, set := range ex.Sets {
			if set.Done {
				volume += float64(set.Reps) * set.WeightKg
			}
		}
	}
	return volume
}
