package service

import (
	"context"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// HistoryService manages the permanent record of finished workouts.
type HistoryService interface {
	List(ctx context.Context, filter domain.HistoryFilter, page, perPage int) ([]domain.WorkoutHistoryEntry, error)
	Get(ctx context.Context, id string) (*domain.WorkoutHistoryEntry, error)
	Create(ctx context.Context, entry domain.WorkoutHistoryEntry) (*domain.WorkoutHistoryEntry, error)
	Update(ctx context.Context, entry domain.WorkoutHistoryEntry) (*domain.WorkoutHistoryEntry, error)
	Delete(ctx context.Context, id string) error
}

type historyService struct {
	client backend.Client
}

func NewHistoryService(client backend.Client) HistoryService {
	return &historyService{client: client}
}

func (s *historyService) List(ctx context.Context, filter domain.HistoryFilter, page, perPage int) ([]domain.WorkoutHistoryEntry, error) {
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
	if !filter.From.IsZero() {
		fb.notBefore("performedAt", filter.From)
	}
	if !filter.To.IsZero() {
		fb.notAfter("performedAt", filter.To)
	}

	list, err := s.client.List(ctx, backend.CollectionHistory, backend.ListOptions{
		Page:    page,
		PerPage: perPage,
		Filter:  fb.String(),
		Sort:    "-performedAt",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[domain.WorkoutHistoryEntry](list.Items)
}

func (s *historyService) Get(ctx context.Context, id string) (*domain.WorkoutHistoryEntry, error) {
	if err := validateID("history id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, backend.CollectionHistory, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutHistoryEntry](raw)
}

func (s *historyService) Create(ctx context.Context, entry domain.WorkoutHistoryEntry) (*domain.WorkoutHistoryEntry, error) {
	if err := s.validate(entry); err != nil {
		return nil, err
	}
	if entry.ID != "" {
		return nil, apperr.Validation("a new history entry must not carry an id")
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}
	entry.User = userID

	raw, err := s.client.Create(ctx, backend.CollectionHistory, entry)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutHistoryEntry](raw)
}

func (s *historyService) Update(ctx context.Context, entry domain.WorkoutHistoryEntry) (*domain.WorkoutHistoryEntry, error) {
	if err := validateID("history id", entry.ID); err != nil {
		return nil, err
	}
	if err := s.validate(entry); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Update(ctx, backend.CollectionHistory, entry.ID, entry)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutHistoryEntry](raw)
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	if err := validateID("history id", id); err != nil {
		return err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return err
	}
	return s.client.Delete(ctx, backend.CollectionHistory, id)
}

func (s *historyService) validate(entry domain.WorkoutHistoryEntry) error {
	if err := validateName("workout name", entry.WorkoutName); err != nil {
		return err
	}
	if entry.PerformedAt.IsZero() {
		return apperr.Validation("performedAt cannot be zero")
	}
	if entry.DurationSeconds < 0 || entry.TotalVolumeKg < 0 || entry.CompletedSets < 0 {
		return apperr.Validation("duration, volume and completed sets cannot be negative")
	}
	if len(entry.Notes) > maxNotesLen {
		return apperr.Validation("notes exceed %d characters", maxNotesLen)
	}
	return nil
}
