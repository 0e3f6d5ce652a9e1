// AngelaMos | 2026
// repos.go

// Package testutil holds in-memory stand-ins for the PostgreSQL
// repositories so handlers can be exercised end to end without a database.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/entry"
	"github.com/carterperez-dev/journal-backend/internal/user"
)

type UserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]user.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]user.User)}
}

func (r *UserRepo) Create(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
	}

	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *UserRepo) List(_ context.Context, params user.ListUsersParams) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(params.Search)
	out := []user.User{}
	for _, u := range r.users {
		if strings.Contains(u.Email, search) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *UserRepo) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

// SetAdmin flips the stored role, standing in for an out-of-band change.
func (r *UserRepo) SetAdmin(id uuid.UUID, admin bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.Admin = admin
		r.users[id] = u
	}
}

type EntryRepo struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry.Entry
}

func NewEntryRepo() *EntryRepo {
	return &EntryRepo{entries: make(map[uuid.UUID]entry.Entry)}
}

func (r *EntryRepo) Create(_ context.Context, e *entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e.Date = time.Now()
	e.UpdatedAt = e.Date
	r.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) GetByID(_ context.Context, id uuid.UUID) (*entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("get entry: %w", core.ErrNotFound)
	}
	return &e, nil
}

func (r *EntryRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entry.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entry.Entry{}
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *EntryRepo) Update(_ context.Context, e *entry.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[e.ID]
	if !ok || existing.UserID != e.UserID {
		return fmt.Errorf("update entry: %w", core.ErrNotFound)
	}

	e.Date = existing.Date
	e.UpdatedAt = time.Now()
	r.entries[e.ID] = *e
	return nil
}

func (r *EntryRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.entries[id]
	if !ok || existing.UserID != userID {
		return fmt.Errorf("delete entry: %w", core.ErrNotFound)
	}

	delete(r.entries, id)
	return nil
}

func (r *EntryRepo) Count(context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries), nil
}

var (
	_ user.Repository  = (*UserRepo)(nil)
	_ entry.Repository = (*EntryRepo)(nil)
)
