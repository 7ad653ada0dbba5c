package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"periolifts/fitness-client/internal/apperr"
	"periolifts/fitness-client/internal/backend"
)

// Validation bounds shared by all services. Checks run before any network
// call; a failure is always a ValidationError.
const (
	MaxPerPage   = 100
	maxNameLen   = 150
	maxNotesLen  = 2000
	maxSearchLen = 200
)

func validatePagination(page, perPage int) error {
	if page < 1 {
		return apperr.Validation("page must be >= 1, got %d", page)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return apperr.Validation("perPage must be between 1 and %d, got %d", MaxPerPage, perPage)
	}
	return nil
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperr.Validation("%s cannot be empty", field)
	}
	if len(value) > maxNameLen {
		return apperr.Validation("%s exceeds %d characters", field, maxNameLen)
	}
	return nil
}

func validateID(field, value string) error {
	if value == "" {
		return apperr.Validation("%s cannot be empty", field)
	}
	return nil
}

// requireAuth returns the authenticated user id, or an AuthenticationError
// when there is no live session. Called before every authed remote call.
func requireAuth(store *backend.AuthStore) (string, error) {
	if !store.IsValid() {
		return "", apperr.Authentication("no active session")
	}
	return store.User().ID, nil
}

// escapeFilterValue makes a user-supplied string safe inside a quoted
// backend filter expression.
func escapeFilterValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `"`, `\"`)
}

// filterBuilder assembles backend filter expressions clause by clause.
type filterBuilder struct {
	clauses []string
}

func (b *filterBuilder) equal(field, value string) *filterBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf(`%s = "%s"`, field, escapeFilterValue(value)))
	return b
}

func (b *filterBuilder) search(field, value string) *filterBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf(`%s ~ "%s"`, field, escapeFilterValue(value)))
	return b
}

func (b *filterBuilder) notBefore(field string, t time.Time) *filterBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf(`%s >= "%s"`, field, t.UTC().Format(time.RFC3339)))
	return b
}

func (b *filterBuilder) notAfter(field string, t time.Time) *filterBuilder {
	b.clauses = append(b.clauses, fmt.Sprintf(`%s <= "%s"`, field, t.UTC().Format(time.RFC3339)))
	return b
}

func (b *filterBuilder) String() string {
	return strings.Join(b.clauses, " && ")
}

// decodeRecords unmarshals a page of raw backend records into typed entities.
func decodeRecords[T any](items []json.RawMessage) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, raw := range items {
		var entity T
		if err := json.Unmarshal(raw, &entity); err != nil {
			return nil, apperr.Server("malformed record: %v", err)
		}
		out = append(out, entity)
	}
	return out, nil
}

func decodeRecord[T any](raw json.RawMessage) (*T, error) {
	var entity T
	if err := json.Unmarshal(raw, &entity); err != nil {
		return nil, apperr.Server("malformed record: %v", err)
	}
	return &entity, nil
}
