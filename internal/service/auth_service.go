package service

import (
	"context"
	"strings"

	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

const minPasswordLen = 8

// AuthService handles login, registration and logout against the backend's
// auth endpoints. The token lives in the backend's AuthStore; widgets that
// care about auth changes subscribe there.
type AuthService interface {
	Login(ctx context.Context, identity, password string) (*domain.User, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Logout()
	CurrentUser() (domain.User, bool)
	OnAuthChange(fn func(backend.AuthEvent)) func()
}

type authService struct {
	client backend.Client
}

func NewAuthService(client backend.Client) AuthService {
	return &authService{client: client}
}

func (s *authService) Login(ctx context.Context, identity, password string) (*domain.User, error) {
	if strings.TrimSpace(identity) == "" {
		return nil, apperr.Validation("identity cannot be empty")
	}
	if password == "" {
		return nil, apperr.Validation("password cannot be empty")
	}

	result, err := s.client.AuthWithPassword(ctx, identity, password)
	if err != nil {
		return nil, err
	}
	return &result.User, nil
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if strings.TrimSpace(email) == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Validation("password must be at least %d characters", minPasswordLen)
	}
	if err := validateName("name", name); err != nil {
		return nil, err
	}

	user, err := s.client.Register(ctx, email, password, name)
	if err != nil {
		return nil, err
	}
	log.Infof("registered user %s", user.Email)
	return user, nil
}

func (s *authService) Logout() {
	s.client.Logout()
}

func (s *authService) CurrentUser() (domain.User, bool) {
	store := s.client.AuthStore()
	if !store.IsValid() {
		return domain.User{}, false
	}
	return store.User(), true
}

func (s *authService) OnAuthChange(fn func(backend.AuthEvent)) func() {
	return s.client.AuthStore().OnChange(fn)
}
