package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
	"periolifts/fitness-client/internal/service"
)

func TestPlanCreate_UnknownWeekday(t *testing.T) {
	client := newAuthedFakeClient()
	svc := service.NewPlanService(client)

	_, err := svc.Create(context.Background(), domain.WorkoutPlan{
		Name:     "PPL",
		Schedule: map[string]string{"funday": "w1"},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "funday")
	assert.Zero(t, client.networkCalls())
}

func TestPlanActive_NoneActive(t *testing.T) {
	client := newAuthedFakeClient()
	client.listResponse = &backend.RecordList{Items: nil}
	svc := service.NewPlanService(client)

	plan, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Nil(t, plan)
	assert.Equal(t, `user = "usr123" && isActive = "true"`, client.lastListOpts.Filter)
}

func TestPlanAuth_RequiredForMutations(t *testing.T) {
	client := newFakeClient()
	svc := service.NewPlanService(client)

	_, err := svc.Create(context.Background(), domain.WorkoutPlan{
		Name:     "PPL",
		Schedule: map[string]string{"monday": "w1"},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.Zero(t, client.networkCalls())

	err = svc.Delete(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuthentication, apperr.KindOf(err))
	assert.Zero(t, client.networkCalls())
}
