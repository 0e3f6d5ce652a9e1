// AngelaMos | 2026
// scheme.go

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

const (
	SchemeBasic   = "basic"
	SchemeSession = "session"
	SchemeBearer  = "bearer"
)

func toIdentity(u *UserInfo) *middleware.Identity {
	return &middleware.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Admin:  u.Admin,
	}
}

// BasicScheme verifies HTTP Basic credentials on every request.
type BasicScheme struct {
	service *Service
}

func NewBasicScheme(service *Service) *BasicScheme {
	return &BasicScheme{service: service}
}

func (s *BasicScheme) Name() string { return SchemeBasic }

func (s *BasicScheme) Resolve(r *http.Request) (*middleware.Identity, error) {
	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, middleware.ErrNoCredentials
	}

	user, err := s.service.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}

	return toIdentity(user), nil
}

// SessionScheme resolves the session cookie to the current user record.
type SessionScheme struct {
	service *Service
	cookie  SessionCookie
}

func NewSessionScheme(service *Service, cookie SessionCookie) *SessionScheme {
	return &SessionScheme{service: service, cookie: cookie}
}

func (s *SessionScheme) Name() string { return SchemeSession }

func (s *SessionScheme) Resolve(r *http.Request) (*middleware.Identity, error) {
	token, ok := s.cookie.Read(r)
	if !ok {
		return nil, middleware.ErrNoCredentials
	}

	user, err := s.service.ResolveSession(r.Context(), token)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}

	return toIdentity(user), nil
}

// BearerScheme accepts access tokens issued by the token endpoint.
type BearerScheme struct {
	service *Service
}

func NewBearerScheme(service *Service) *BearerScheme {
	return &BearerScheme{service: service}
}

func (s *BearerScheme) Name() string { return SchemeBearer }

func (s *BearerScheme) Resolve(r *http.Request) (*middleware.Identity, error) {
	token := ExtractBearerToken(r)
	if token == "" {
		return nil, middleware.ErrNoCredentials
	}

	user, err := s.service.ResolveAccessToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrTokenExpired),
			errors.Is(err, core.ErrTokenInvalid):
			return nil, fmt.Errorf("%w: %w", middleware.ErrUnauthenticated, err)
		case errors.Is(err, core.ErrNotFound):
			return nil, middleware.ErrUnauthenticated
		}
		return nil, err
	}

	return toIdentity(user), nil
}

func ExtractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

var (
	_ middleware.Scheme = (*BasicScheme)(nil)
	_ middleware.Scheme = (*SessionScheme)(nil)
	_ middleware.Scheme = (*BearerScheme)(nil)
)
