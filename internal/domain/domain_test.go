package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkoutFor(t *testing.T) {
	plan := WorkoutPlan{Schedule: map[string]string{"monday": "w1", "friday": "w2"}}

	assert.Equal(t, "w1", plan.WorkoutFor(time.Monday))
	assert.Equal(t, "w2", plan.WorkoutFor(time.Friday))
	assert.Empty(t, plan.WorkoutFor(time.Sunday))
	assert.Empty(t, WorkoutPlan{}.WorkoutFor(time.Monday))
}

func TestTrainingDays(t *testing.T) {
	plan := WorkoutPlan{Schedule: map[string]string{"monday": "w1", "tuesday": "", "friday": "w2"}}
	assert.Equal(t, 2, plan.TrainingDays())
	assert.Zero(t, WorkoutPlan{}.TrainingDays())
}

func TestWeightConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 100.0, LbToKg(KgToLb(100)), 1e-9)
	assert.InDelta(t, 225.0, KgToLb(102.058), 0.01)
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "60.0 kg", FormatWeight(60, true))
	assert.Equal(t, "132.3 lb", FormatWeight(60, false))
}

func TestSessionAggregates(t *testing.T) {
	session := WorkoutSession{
		Exercises: []SessionExercise{
			{Sets: []SetResult{{Reps: 8, WeightKg: 60, Done: true}, {Reps: 8, WeightKg: 60}}},
			{Sets: []SetResult{{Reps: 10, WeightKg: 40, Done: true}}},
		},
	}
	assert.Equal(t, 2, session.CompletedSets())
	assert.Equal(t, 8*60.0+10*40.0, session.TotalVolumeKg())
}

func TestWorkoutTotalSets(t *testing.T) {
	workout := Workout{Exercises: []WorkoutExercise{{Sets: 3}, {Sets: 2}, {Sets: 0}}}
	assert.Equal(t, 5, workout.TotalSets())
}
