package domain

import (
	"strings"
	"time"
)

// WorkoutPlan maps weekdays to workouts. The Schedule keys are lowercase
// English weekday names ("monday" .. "sunday"); values are workout record ids.
type WorkoutPlan struct {
	ID          string            `json:"id"`
	User        string            `json:"user"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Schedule    map[string]string `json:"schedule"`
	IsActive    bool              `json:"isActive"` // the currently followed plan, at most one per user
	Created     time.Time         `json:"created"`
	Updated     time.Time         `json:"updated"`
}

// WorkoutFor returns the workout id scheduled for the given weekday, or ""
// when the day is a rest day.
func (p WorkoutPlan) WorkoutFor(day time.Weekday) string {
	if p.Schedule == nil {
		return ""
	}
	return p.Schedule[strings.ToLower(day.String())]
}

// TrainingDays counts the weekdays that have a workout scheduled.
func (p WorkoutPlan) TrainingDays() int {
	count := 0
	for _, workoutID := range p.Schedule {
		if workoutID != "" {
			count++
		}
	}
	return count
}
