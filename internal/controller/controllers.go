package controller

import (
	"context"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/domain"
	"periolifts/fitness-client/internal/service"
)

// Per-resource constructors. Each binds a service and an immutable filter;
// a different filter means a different controller instance. Insert position
// follows the listing order: most-recent-first resources insert at the
// head, the alphabetical exercise library appends.

func NewWorkoutList(svc service.WorkoutService, filter domain.WorkoutFilter, pageSize int) *ListController[domain.Workout] {
	return newListController(listConfig[domain.Workout]{
		fetch: func(ctx context.Context, page, perPage int) ([]domain.Workout, error) {
			return svc.List(ctx, filter, page, perPage)
		},
		create:       svc.Create,
		update:       svc.Update,
		remove:       svc.Delete,
		idOf:         func(w domain.Workout) string { return w.ID },
		pageSize:     pageSize,
		insertAtHead: true,
	})
}

func NewExerciseList(svc service.ExerciseService, filter domain.ExerciseFilter, pageSize int) *ListController[domain.Exercise] {
	return newListController(listConfig[domain.Exercise]{
		fetch: func(ctx context.Context, page, perPage int) ([]domain.Exercise, error) {
			return svc.List(ctx, filter, page, perPage)
		},
		create:       svc.Create,
		update:       svc.Update,
		remove:       svc.Delete,
		idOf:         func(e domain.Exercise) string { return e.ID },
		pageSize:     pageSize,
		insertAtHead: false,
	})
}

func NewPlanList(svc service.PlanService, filter domain.PlanFilter, pageSize int) *ListController[domain.WorkoutPlan] {
	return newListController(listConfig[domain.WorkoutPlan]{
		fetch: func(ctx context.Context, page, perPage int) ([]domain.WorkoutPlan, error) {
			return svc.List(ctx, filter, page, perPage)
		},
		create:       svc.Create,
		update:       svc.Update,
		remove:       svc.Delete,
		idOf:         func(p domain.WorkoutPlan) string { return p.ID },
		pageSize:     pageSize,
		insertAtHead: true,
	})
}

func NewSessionList(svc service.SessionService, filter domain.SessionFilter, pageSize int) *ListController[domain.WorkoutSession] {
	return newListController(listConfig[domain.WorkoutSession]{
		fetch: func(ctx context.Context, page, perPage int) ([]domain.WorkoutSession, error) {
			return svc.List(ctx, filter, page, perPage)
		},
		// Sessions are started from a workout via SessionService.Start;
		// direct creation through the list is rejected up front.
		create: func(ctx context.Context, s domain.WorkoutSession) (*domain.WorkoutSession, error) {
			return nil, apperr.Validation("sessions are started from a workout, not created directly")
		},
		update:       svc.Update,
		remove:       svc.Delete,
		idOf:         func(s domain.WorkoutSession) string { return s.ID },
		pageSize:     pageSize,
		insertAtHead: true,
	})
}

func NewHistoryList(svc service.HistoryService, filter domain.HistoryFilter, pageSize int) *ListController[domain.WorkoutHistoryEntry] {
	return newListController(listConfig[domain.WorkoutHistoryEntry]{
		fetch: func(ctx context.Context, page, perPage int) ([]domain.WorkoutHistoryEntry, error) {
			return svc.List(ctx, filter, page, perPage)
		},
		create:       svc.Create,
		update:       svc.Update,
		remove:       svc.Delete,
		idOf:         func(h domain.WorkoutHistoryEntry) string { return h.ID },
		pageSize:     pageSize,
		insertAtHead: true,
	})
}
