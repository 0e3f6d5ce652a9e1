// AngelaMos | 2026
// fixtures.go

package testutil

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/auth"
	"github.com/carterperez-dev/journal-backend/internal/config"
	"github.com/carterperez-dev/journal-backend/internal/policy"
	"github.com/carterperez-dev/journal-backend/internal/user"
)

const SessionCookieName = "journal_session"

func JWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "journal-test",
		Audience:          "journal-test",
	}
}

// NewJWTManager signs with a throwaway P-256 key.
func NewJWTManager(t testing.TB) *auth.JWTManager {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := auth.NewJWTManagerFromKey(key, JWTConfig())
	require.NoError(t, err)
	return m
}

func NewMemorySessions(t testing.TB) *auth.MemorySessionStore {
	t.Helper()

	store, err := auth.NewMemorySessionStore(context.Background(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func SessionCookie() auth.SessionCookie {
	return auth.SessionCookie{Name: SessionCookieName, TTL: time.Hour}
}

// SeedUser creates a user directly through the service, bypassing the
// HTTP surface.
func SeedUser(
	t testing.TB,
	users *user.Service,
	email, password string,
	admin bool,
) *user.User {
	t.Helper()
	ctx := context.Background()

	if admin {
		u, err := users.Bootstrap(ctx, email, password)
		require.NoError(t, err)
		return u
	}

	operator := policy.Subject{ID: uuid.New(), Admin: true}
	u, err := users.Create(ctx, operator, user.CreateUserRequest{
		Username: email,
		Password: password,
	})
	require.NoError(t, err)
	return u
}

// CookieFrom returns the named cookie set by resp, or nil.
func CookieFrom(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
