package reminder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/domain"
)

func TestSchedulePlan_InvalidTime(t *testing.T) {
	s := NewScheduler(func(string) {})
	defer s.Stop()

	assert.Error(t, s.SchedulePlan(domain.WorkoutPlan{Name: "PPL"}, 24, 0, nil))
	assert.Error(t, s.SchedulePlan(domain.WorkoutPlan{Name: "PPL"}, -1, 0, nil))
	assert.Error(t, s.SchedulePlan(domain.WorkoutPlan{Name: "PPL"}, 18, 60, nil))
}

func TestSchedulePlan_OneEntryPerTrainingDay(t *testing.T) {
	s := NewScheduler(func(string) {})
	defer s.Stop()

	plan := domain.WorkoutPlan{
		Name: "PPL",
		Schedule: map[string]string{
			"monday":    "w-push",
			"wednesday": "w-pull",
			"friday":    "w-legs",
			"saturday":  "", // rest day entries are skipped
		},
	}
	require.NoError(t, s.SchedulePlan(plan, 18, 0, nil))
	assert.Len(t, s.c.Entries(), 3)
}

func TestSchedulePlan_ReplacesPreviousSchedule(t *testing.T) {
	s := NewScheduler(func(string) {})
	defer s.Stop()

	first := domain.WorkoutPlan{Name: "Old", Schedule: map[string]string{"monday": "w1", "tuesday": "w2"}}
	require.NoError(t, s.SchedulePlan(first, 18, 0, nil))

	second := domain.WorkoutPlan{Name: "New", Schedule: map[string]string{"friday": "w3"}}
	require.NoError(t, s.SchedulePlan(second, 7, 30, nil))
	assert.Len(t, s.c.Entries(), 1)
}

func TestStop_Idempotent(t *testing.T) {
	s := NewScheduler(func(string) {})
	require.NoError(t, s.SchedulePlan(domain.WorkoutPlan{
		Name:     "PPL",
		Schedule: map[string]string{"monday": "w1"},
	}, 18, 0, nil))

	s.Stop()
	s.Stop()
	assert.Nil(t, s.c)
}
