// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/policy"
)

type memRepo struct {
	mu    sync.Mutex
	users []User
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users = append(m.users, *u)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (m *memRepo) List(_ context.Context, p ListUsersParams) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []User{}
	for _, u := range m.users {
		if strings.Contains(u.Email, p.Search) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memRepo) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users), nil
}

func seedService(t *testing.T) (*Service, *User, *User) {
	t.Helper()
	svc := NewService(&memRepo{})

	admin, err := svc.Bootstrap(context.Background(), "Root", "rootpw")
	require.NoError(t, err)

	alice, err := svc.Create(context.Background(),
		policy.Subject{ID: admin.ID, Admin: true},
		CreateUserRequest{Username: "alice", Password: "pw1"},
	)
	require.NoError(t, err)

	return svc, admin, alice
}

func TestService_Create(t *testing.T) {
	svc, admin, alice := seedService(t)
	ctx := context.Background()

	assert.True(t, admin.Admin)
	assert.Equal(t, "root", admin.Email)
	assert.False(t, alice.Admin)
	assert.True(t, core.VerifyPassword("pw1", alice.Salt, alice.PasswordHash))

	_, err := svc.Create(ctx, policy.Subject{ID: alice.ID},
		CreateUserRequest{Username: "bob", Password: "pw"})
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Create(ctx, policy.Subject{ID: admin.ID, Admin: true},
		CreateUserRequest{Username: "ALICE", Password: "other"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestService_Get(t *testing.T) {
	svc, admin, alice := seedService(t)
	ctx := context.Background()

	got, err := svc.Get(ctx, policy.Subject{ID: alice.ID}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = svc.Get(ctx, policy.Subject{ID: alice.ID}, admin.ID)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, err = svc.Get(ctx, policy.Subject{ID: admin.ID, Admin: true}, alice.ID)
	require.NoError(t, err)

	_, err = svc.Get(ctx, policy.Subject{ID: admin.ID, Admin: true}, uuid.New())
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_List(t *testing.T) {
	svc, admin, alice := seedService(t)
	ctx := context.Background()

	users, err := svc.List(ctx, policy.Subject{ID: admin.ID, Admin: true}, ListUsersParams{})
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.List(ctx, policy.Subject{ID: alice.ID}, ListUsersParams{})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestService_UserProvider(t *testing.T) {
	svc, _, alice := seedService(t)
	ctx := context.Background()

	info, err := svc.GetByEmail(ctx, "  Alice ")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, info.ID)
	assert.Equal(t, alice.Salt, info.Salt)

	info, err = svc.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, info.Admin)
}
