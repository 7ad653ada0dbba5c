package service

import (
	"context"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// WorkoutService manages workout templates. Listing is most-recent-first.
type WorkoutService interface {
	List(ctx context.Context, filter domain.WorkoutFilter, page, perPage int) ([]domain.Workout, error)
	Get(ctx context.Context, id string) (*domain.Workout, error)
	Create(ctx context.Context, workout domain.Workout) (*domain.Workout, error)
	Update(ctx context.Context, workout domain.Workout) (*domain.Workout, error)
	Delete(ctx context.Context, id string) error
}

type workoutService struct {
	client backend.Client
}

func NewWorkoutService(client backend.Client) WorkoutService {
	return &workoutService{client: client}
}

func (s *workoutService) List(ctx context.Context, filter domain.WorkoutFilter, page, perPage int) ([]domain.Workout, error) {
	if err := validatePagination(page, perPage); err != nil {
		return nil, err
	}
	if len(filter.Search) > maxSearchLen {
		return nil, apperr.Validation("search query exceeds %d characters", maxSearchLen)
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}

	fb := (&filterBuilder{}).equal("user", userID)
	if filter.Search != "" {
		fb.search("name", filter.Search)
	}

	list, err := s.client.List(ctx, backend.CollectionWorkouts, backend.ListOptions{
		Page:    page,
		PerPage: perPage,
		Filter:  fb.String(),
		Sort:    "-created",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[domain.Workout](list.Items)
}

func (s *workoutService) Get(ctx context.Context, id string) (*domain.Workout, error) {
	if err := validateID("workout id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, backend.CollectionWorkouts, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Workout](raw)
}

func (s *workoutService) Create(ctx context.Context, workout domain.Workout) (*domain.Workout, error) {
	if err := s.validate(workout); err != nil {
		return nil, err
	}
	if workout.ID != "" {
		return nil, apperr.Validation("a new workout must not carry an id")
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}
	workout.User = userID

	raw, err := s.client.Create(ctx, backend.CollectionWorkouts, workout)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Workout](raw)
}

func (s *workoutService) Update(ctx context.Context, workout domain.Workout) (*domain.Workout, error) {
	if err := validateID("workout id", workout.ID); err != nil {
		return nil, err
	}
	if err := s.validate(workout); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Update(ctx, backend.CollectionWorkouts, workout.ID, workout)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Workout](raw)
}

func (s *workoutService) Delete(ctx context.Context, id string) error {
	if err := validateID("workout id", id); err != nil {
		return err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return err
	}
	return s.client.Delete(ctx, backend.CollectionWorkouts, id)
}

func (s *workoutService) validate(workout domain.Workout) error {
	if err := validateName("workout name", workout.Name); err != nil {
		return err
	}
	if len(workout.Notes) > maxNotesLen {
		return apperr.Validation("notes exceed %d characters", maxNotesLen)
	}
	for i, ex := range workout.Exercises {
		if ex.ExerciseID == "" {
			return apperr.Validation("exercise %d is missing its exercise id", i+1)
		}
		if ex.Sets < 1 || ex.Reps < 1 {
			return apperr.Validation("exercise %d needs at least 1 set and 1 rep", i+1)
		}
		if ex.WeightKg < 0 {
			return apperr.Validation("exercise %d has a negative weight", i+1)
		}
	}
	return nil
}
