// AngelaMos | 2026
// auth_test.go

package auth

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/config"
	"github.com/carterperez-dev/journal-backend/internal/core"
)

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*UserInfo
	fail  error
	calls int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[uuid.UUID]*UserInfo)}
}

func (f *fakeUsers) add(t *testing.T, email, password string, admin bool) *UserInfo {
	t.Helper()
	salt, hash, err := core.HashPassword(password)
	require.NoError(t, err)

	u := &UserInfo{
		ID:           uuid.New(),
		Email:        email,
		Salt:         salt,
		PasswordHash: hash,
		Admin:        admin,
	}

	f.mu.Lock()
	f.byID[u.ID] = u
	f.mu.Unlock()
	return u
}

func (f *fakeUsers) setAdmin(id uuid.UUID, admin bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[id].Admin = admin
}

func (f *fakeUsers) remove(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	for _, u := range f.byID {
		if u.Email == strings.ToLower(email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*UserInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail != nil {
		return nil, f.fail
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	copied := *u
	return &copied, nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessTokenExpire: 15 * time.Minute,
		Issuer:            "journal-test",
		Audience:          "journal-test",
	}
}

func newTestJWT(t *testing.T, cfg config.JWTConfig) *JWTManager {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	m, err := NewJWTManagerFromKey(key, cfg)
	require.NoError(t, err)
	return m
}

func newTestService(t *testing.T) (*Service, *fakeUsers) {
	t.Helper()
	store, err := NewMemorySessionStore(context.Background(), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	users := newFakeUsers()
	return NewService(users, store, newTestJWT(t, testJWTConfig()), time.Hour), users
}
