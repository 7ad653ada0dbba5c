package backend_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/domain"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "usr123",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestAuthStore_SaveAndClear(t *testing.T) {
	store := backend.NewAuthStore()
	assert.False(t, store.IsValid())
	assert.Empty(t, store.Token())

	user := domain.User{ID: "usr123", Email: "lifter@example.com"}
	store.Save(signedToken(t, time.Now().Add(time.Hour)), user)

	assert.True(t, store.IsValid())
	assert.Equal(t, user, store.User())

	store.Clear()
	assert.False(t, store.IsValid())
	assert.Empty(t, store.User().ID)
}

func TestAuthStore_ExpiredToken(t *testing.T) {
	store := backend.NewAuthStore()
	store.Save(signedToken(t, time.Now().Add(-time.Minute)), domain.User{ID: "usr123"})
	assert.False(t, store.IsValid())
}

func TestAuthStore_OpaqueTokenIsValid(t *testing.T) {
	// Appwrite session secrets are not JWTs; presence counts as valid.
	store := backend.NewAuthStore()
	store.Save("opaque-session-secret", domain.User{ID: "usr123"})
	assert.True(t, store.IsValid())
}

func TestAuthStore_OnChange(t *testing.T) {
	store := backend.NewAuthStore()

	var events []backend.AuthEvent
	unsubscribe := store.OnChange(func(e backend.AuthEvent) {
		events = append(events, e)
	})

	store.Save("tok", domain.User{ID: "usr123"})
	store.Clear()
	require.Len(t, events, 2)
	assert.Equal(t, "tok", events[0].Token)
	assert.Equal(t, "usr123", events[0].User.ID)
	assert.Empty(t, events[1].Token)

	unsubscribe()
	store.Save("tok2", domain.User{ID: "usr456"})
	assert.Len(t, events, 2)
}
