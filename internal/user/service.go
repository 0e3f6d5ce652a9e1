// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/auth"
	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/policy"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create adds a non-admin user on behalf of subject.
func (s *Service) Create(
	ctx context.Context,
	subject policy.Subject,
	req CreateUserRequest,
) (*User, error) {
	ctx, span := core.StartSpan(ctx, "user.Create")
	defer span.End()

	if !policy.Authorize(subject, policy.CreateUser, policy.Resource{}).Allowed() {
		return nil, fmt.Errorf("create user: %w", core.ErrForbidden)
	}

	return s.create(ctx, req.Username, req.Password, false)
}

// Bootstrap creates an admin without a policy check. It backs the operator
// CLI and is not reachable over HTTP.
func (s *Service) Bootstrap(
	ctx context.Context,
	email, password string,
) (*User, error) {
	return s.create(ctx, email, password, true)
}

func (s *Service) create(
	ctx context.Context,
	email, password string,
	admin bool,
) (*User, error) {
	salt, hash, err := core.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		ID:           uuid.New(),
		Email:        normalizeEmail(email),
		Salt:         salt,
		PasswordHash: hash,
		Admin:        admin,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Get(
	ctx context.Context,
	subject policy.Subject,
	id uuid.UUID,
) (*User, error) {
	if !policy.Authorize(subject, policy.ReadUser, policy.Resource{OwnerID: id}).Allowed() {
		return nil, fmt.Errorf("get user: %w", core.ErrForbidden)
	}

	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	subject policy.Subject,
	params ListUsersParams,
) ([]User, error) {
	if !policy.Authorize(subject, policy.ListUsers, policy.Resource{}).Allowed() {
		return nil, fmt.Errorf("list users: %w", core.ErrForbidden)
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Salt:         u.Salt,
		PasswordHash: u.PasswordHash,
		Admin:        u.Admin,
	}
}

var _ auth.UserProvider = (*Service)(nil)
