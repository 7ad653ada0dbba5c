package service

import (
	"context"
	"strings"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

// PlanService manages workout plans, including the single-active-plan rule.
type PlanService interface {
	List(ctx context.Context, filter domain.PlanFilter, page, perPage int) ([]domain.WorkoutPlan, error)
	Get(ctx context.Context, id string) (*domain.WorkoutPlan, error)
	Active(ctx context.Context) (*domain.WorkoutPlan, error)
	Create(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, id string) error
	// Activate makes the given plan the active one, deactivating any other.
	Activate(ctx context.Context, id string) (*domain.WorkoutPlan, error)
}

type planService struct {
	client backend.Client
}

func NewPlanService(client backend.Client) PlanService {
	return &planService{client: client}
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

func (s *planService) List(ctx context.Context, filter domain.PlanFilter, page, perPage int) ([]domain.WorkoutPlan, error) {
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
	if filter.ActiveOnly {
		fb.equal("isActive", "true")
	}

	list, err := s.client.List(ctx, backend.CollectionPlans, backend.ListOptions{
		Page:    page,
		PerPage: perPage,
		Filter:  fb.String(),
		Sort:    "-created",
	})
	if err != nil {
		return nil, err
	}
	return decodeRecords[domain.WorkoutPlan](list.Items)
}

func (s *planService) Get(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	if err := validateID("plan id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Get(ctx, backend.CollectionPlans, id)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutPlan](raw)
}

// Active returns the user's active plan, or nil when none is active.
func (s *planService) Active(ctx context.Context) (*domain.WorkoutPlan, error) {
	plans, err := s.List(ctx, domain.PlanFilter{ActiveOnly: true}, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return nil, nil
	}
	return &plans[0], nil
}

func (s *planService) Create(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := s.validate(plan); err != nil {
		return nil, err
	}
	if plan.ID != "" {
		return nil, apperr.Validation("a new plan must not carry an id")
	}
	userID, err := requireAuth(s.client.AuthStore())
	if err != nil {
		return nil, err
	}
	plan.User = userID

	raw, err := s.client.Create(ctx, backend.CollectionPlans, plan)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutPlan](raw)
}

func (s *planService) Update(ctx context.Context, plan domain.WorkoutPlan) (*domain.WorkoutPlan, error) {
	if err := validateID("plan id", plan.ID); err != nil {
		return nil, err
	}
	if err := s.validate(plan); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	raw, err := s.client.Update(ctx, backend.CollectionPlans, plan.ID, plan)
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutPlan](raw)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	if err := validateID("plan id", id); err != nil {
		return err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return err
	}
	return s.client.Delete(ctx, backend.CollectionPlans, id)
}

func (s *planService) Activate(ctx context.Context, id string) (*domain.WorkoutPlan, error) {
	if err := validateID("plan id", id); err != nil {
		return nil, err
	}
	if _, err := requireAuth(s.client.AuthStore()); err != nil {
		return nil, err
	}

	// Deactivate the current plan first so at most one stays active. Not
	// transactional: a failure in between leaves no plan active, which the
	// user can recover from by activating again.
	current, err := s.Active(ctx)
	if err != nil {
		return nil, err
	}
	if current != nil && current.ID != id {
		if _, err := s.client.Update(ctx, backend.CollectionPlans, current.ID,
			map[string]any{"isActive": false}); err != nil {
			return nil, err
		}
	}

	raw, err := s.client.Update(ctx, backend.CollectionPlans, id, map[string]any{"isActive": true})
	if err != nil {
		return nil, err
	}
	return decodeRecord[domain.WorkoutPlan](raw)
}

func (s *planService) validate(plan domain.WorkoutPlan) error {
	if err := validateName("plan name", plan.Name); err != nil {
		return err
	}
	if len(plan.Description) > maxNotesLen {
		return apperr.Validation("description exceeds %d characters", maxNotesLen)
	}
	for day := range plan.Schedule {
		if !weekdays[strings.ToLower(day)] {
			return apperr.Validation("unknown weekday %q in schedule", day)
		}
	}
	return nil
}
