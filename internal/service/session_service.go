package service

import (
	"context"
	"time"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// SessionService manages live and past workout sessions.
type SessionService interface {
	List(ctx context.Context, filter domain.SessionFilter, page, perPage int) ([]domain.WorkoutSession, error)
	Get(ctx context.Context, id string) (*domain.WorkoutSession, error)
	// Start persists a fresh in-progress session for the given workout.
	Start(ctx context.Context, workout domain.Workout) (*domain.WorkoutSession, error)
	Update(ctx context.Context, session domain.WorkoutSession) (*domain.WorkoutSession, error)
	Delete(ctx context.Context, id string) error
}

type sessionService struct {
	client backend.Client
}

func NewSessionService(client backend.Client) SessionService {
	return &sessionService{client: client}
}

func (s *sessionService) List(ctx context.Context, filter domain.SessionFilter, page, perPage int) ([]domain.WorkoutSession, error) {
	if err := validatePagination(page, perPage); err != nil {
		return nil, err
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}

	fb := (&filterBuilder{}).equal("user", userID)
	if filter.WorkoutID != "" {
		fb.equal("workout", filter.WorkoutID)
	}
	if filter.Status != "" {
		fb.equal("status", string(filter.Status))
	}
	if !filter.From.IsZero() {
		fb.notBefore("startedAt", filter.From)
	}
	if !filter.To.IsZero() {
		fb.notAfter("startedAt", filter.To)
	}

	list, err := s.client.List(ctx, backend.CollectionSessions, backend.ListOptions{
		Page:    page,
		PerPage: perPage,
		Filter:  fb.String(),
		Sort:    "-startedAt",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[domain.WorkoutSession](list.Items)
}

func (s *sessionService) Get(ctx context.Context, id string) (*domain.WorkoutSession, error) {
	if err := validateID("session id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, backend.CollectionSessions, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutSession](raw)
}

func (s *sessionService) Start(ctx context.Context, workout domain.Workout) (*domain.WorkoutSession, error) {
	if err := validateID("workout id", workout.ID); err != nil {
		return nil, err
	}
	if len(workout.Exercises) == 0 {
		return nil, apperr.Validation("workout has no exercises to perform")
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}

	session := domain.WorkoutSession{
		User:        userID,
		WorkoutID:   workout.ID,
		WorkoutName: workout.Name,
		Status:      domain.SessionInProgress,
		StartedAt:   time.Now().UTC(),
		Exercises:   make([]domain.SessionExercise, 0, len(workout.Exercises)),
	}
	for _, ex := range workout.Exercises {
		session.Exercises = append(session.Exercises, domain.SessionExercise{
			ExerciseID: ex.ExerciseID,
			Name:       ex.Name,
			Sets:       make([]domain.SetResult, ex.Sets),
		})
	}

	raw, err := s.client.Create(ctx, backend.CollectionSessions, session)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutSession](raw)
}

func (s *sessionService) Update(ctx context.Context, session domain.WorkoutSession) (*domain.WorkoutSession, error) {
	if err := validateID("session id", session.ID); err != nil {
		return nil, err
	}
	switch session.Status {
	case domain.SessionInProgress, domain.SessionCompleted, domain.SessionAbandoned:
	default:
		return nil, apperr.Validation("unknown session status %q", session.Status)
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Update(ctx, backend.CollectionSessions, session.ID, session)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutSession](raw)
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	if err := validateID("session id", id); err != nil {
		return err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return err
	}
	return s.client.Delete(ctx, backend.CollectionSessions, id)
}
