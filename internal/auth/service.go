// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// UserInfo is the slice of a user record authentication needs. Admin is
// read fresh from the directory on every lookup.
type UserInfo struct {
	ID           uuid.UUID
	Email        string
	Salt         string
	PasswordHash string
	Admin        bool
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserInfo, error)
}

type Service struct {
	users      UserProvider
	sessions   SessionStore
	jwt        *JWTManager
	sessionTTL time.Duration
}

func NewService(
	users UserProvider,
	sessions SessionStore,
	jwt *JWTManager,
	sessionTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		jwt:        jwt,
		sessionTTL: sessionTTL,
	}
}

// Authenticate checks a username and password against the directory. An
// unknown username costs a full key derivation like a wrong password does.
func (s *Service) Authenticate(
	ctx context.Context,
	email, password string,
) (*UserInfo, error) {
	ctx, span := core.StartSpan(ctx, "auth.Authenticate")
	defer span.End()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.VerifyPasswordTimingSafe(password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid := core.VerifyPasswordTimingSafe(password, &core.StoredCredentials{
		Salt: user.Salt,
		Hash: user.PasswordHash,
	})
	if !valid {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CreateSession stores a new session for userID and returns the raw token
// for the cookie. Only the token hash reaches the store.
func (s *Service) CreateSession(
	ctx context.Context,
	userID uuid.UUID,
) (string, error) {
	token, err := core.GenerateSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	if err := s.sessions.Save(ctx, core.HashToken(token), userID, s.sessionTTL); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}

	return token, nil
}

// ResolveSession maps a session token to the current user record. A
// session whose user no longer exists resolves to core.ErrNotFound.
func (s *Service) ResolveSession(
	ctx context.Context,
	token string,
) (*UserInfo, error) {
	userID, err := s.sessions.Get(ctx, core.HashToken(token))
	if err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

func (s *Service) DestroySession(ctx context.Context, token string) error {
	err := s.sessions.Delete(ctx, core.HashToken(token))
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *Service) IssueAccessToken(userID uuid.UUID) (*TokenResponse, error) {
	token, expiresAt, err := s.jwt.CreateAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(expiresAt).Seconds()),
		ExpiresAt:   expiresAt,
	}, nil
}

// ResolveAccessToken verifies a bearer token and loads its subject.
func (s *Service) ResolveAccessToken(
	ctx context.Context,
	token string,
) (*UserInfo, error) {
	userID, err := s.jwt.VerifyAccessToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

func (s *Service) PingSessions(ctx context.Context) error {
	return s.sessions.Ping(ctx)
}
