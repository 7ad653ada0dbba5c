package service

import (
	"context"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// ExerciseService manages the user's exercise library.
type ExerciseService interface {
	List(ctx context.Context, filter domain.ExerciseFilter, page, perPage int) ([]domain.Exercise, error)
	Get(ctx context.Context, id string) (*domain.Exercise, error)
	Create(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)
	Update(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error)
	Delete(ctx context.Context, id string) error
}

type exerciseService struct {
	client backend.Client
}

func NewExerciseService(client backend.Client) ExerciseService {
	return &exerciseService{client: client}
}

func (s *exerciseService) List(ctx context.Context, filter domain.ExerciseFilter, page, perPage int) ([]domain.Exercise, error) {
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
	if filter.MuscleGroup != "" {
		fb.equal("muscleGroup", filter.MuscleGroup)
	}

	list, err := s.client.List(ctx, backend.CollectionExercises, backend.ListOptions{
		Page:    page,
		PerPage: perPage,
		Filter:  fb.String(),
		Sort:    "+name",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[domain.Exercise](list.Items)
}

func (s *exerciseService) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	if err := validateID("exercise id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, backend.CollectionExercises, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Exercise](raw)
}

func (s *exerciseService) Create(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if err := s.validate(exercise); err != nil {
		return nil, err
	}
	if exercise.ID != "" {
		return nil, apperr.Validation("a new exercise must not carry an id")
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}
	exercise.User = userID

	raw, err := s.client.Create(ctx, backend.CollectionExercises, exercise)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Exercise](raw)
}

func (s *exerciseService) Update(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	if err := validateID("exercise id", exercise.ID); err != nil {
		return nil, err
	}
	if err := s.validate(exercise); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Update(ctx, backend.CollectionExercises, exercise.ID, exercise)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.Exercise](raw)
}

func (s *exerciseService) Delete(ctx context.Context, id string) error {
	if err := validateID("exercise id", id); err != nil {
		return err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return err
	}
	return s.client.Delete(ctx, backend.CollectionExercises, id)
}

func (s *exerciseService) validate(exercise domain.Exercise) error {
	if err := validateName("exercise name", exercise.Name); err != nil {
		return err
	}
	if len(exercise.Description) > maxNotesLen {
		return apperr.Validation("description exceeds %d characters", maxNotesLen)
	}
	if exercise.DefaultSets < 0 || exercise.DefaultReps < 0 || exercise.RestSeconds < 0 {
		return apperr.Validation("sets, reps and rest seconds cannot be negative")
	}
	return nil
}
