package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/domain"
	"periolifts/fitness-client/internal/service"
)

func benchWorkout() domain.Workout {
	return domain.Workout{
		ID:   "w1",
		Name: "Push Day",
		Exercises: []domain.WorkoutExercise{
			{ExerciseID: "ex1", Name: "Bench Press", Sets: 3, Reps: 8, WeightKg: 60, RestSeconds: 120},
			{ExerciseID: "ex2", Name: "Overhead Press", Sets: 2, Reps: 10, WeightKg: 40},
		},
	}
}

func TestSessionStart_BuildsSetSlots(t *testing.T) {
	workout := benchWorkout()

	client := newAuthedFakeClient()
	client.recordResponse = mustMarshal(t, domain.WorkoutSession{
		ID: "s1", WorkoutID: workout.ID, Status: domain.SessionInProgress,
	})
	svc := service.NewSessionService(client)

	started, err := svc.Start(context.Background(), workout)
	require.NoError(t, err)
	assert.Equal(t, "s1", started.ID)
	assert.Equal(t, 1, client.createCalls)

	sent, ok := client.lastBody.(domain.WorkoutSession)
	require.True(t, ok)
	assert.Equal(t, domain.SessionInProgress, sent.Status)
	assert.Equal(t, "usr123", sent.User)
	require.Len(t, sent.Exercises, 2)
	assert.Len(t, sent.Exercises[0].Sets, 3)
	assert.Len(t, sent.Exercises[1].Sets, 2)
	assert.False(t, sent.StartedAt.IsZero())
}

func TestSessionStart_EmptyWorkout(t *testing.T) {
	client := newAuthedFakeClient()
	svc := service.NewSessionService(client)

	_, err := svc.Start(context.Background(), domain.Workout{ID: "w1", Name: "Empty"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Zero(t, client.networkCalls())
}

func TestSessionUpdate_UnknownStatus(t *testing.T) {
	client := newAuthedFakeClient()
	svc := service.NewSessionService(client)

	_, err := svc.Update(context.Background(), domain.WorkoutSession{ID: "s1", Status: "paused"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Zero(t, client.networkCalls())
}

func TestSessionList_FilterClauses(t *testing.T) {
	client := newAuthedFakeClient()
	svc := service.NewSessionService(client)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.List(context.Background(), domain.SessionFilter{
		WorkoutID: "w1",
		Status:    domain.SessionCompleted,
		From:      from,
	}, 1, 30)
	require.NoError(t, err)

	assert.Equal(t,
		`user = "usr123" && workout = "w1" && status = "completed" && startedAt >= "2026-01-01T00:00:00Z"`,
		client.lastListOpts.Filter)
	assert.Equal(t, "-startedAt", client.lastListOpts.Sort)
}
