// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/policy"
)

const (
	IdentityKey contextKey = "identity"

	BasicChallenge = `Basic realm="journal"`
)

var (
	// ErrNoCredentials means the scheme found nothing it understands on the
	// request and the next scheme should be tried.
	ErrNoCredentials = errors.New("no credentials for scheme")
	// ErrUnauthenticated means credentials were present but did not resolve
	// to a user.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Identity is the authenticated caller for the lifetime of one request. It
// is always built from the current user record.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Admin  bool
	Scheme string
}

func (i *Identity) Subject() policy.Subject {
	if i == nil {
		return policy.Subject{}
	}
	return policy.Subject{ID: i.UserID, Admin: i.Admin}
}

// Scheme is one way of turning request credentials into an Identity.
type Scheme interface {
	Name() string
	Resolve(r *http.Request) (*Identity, error)
}

// Authenticator tries each scheme in order. The first scheme that finds
// credentials decides the outcome. A request with no credentials at all
// gets a Basic challenge.
func Authenticator(schemes ...Scheme) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := resolve(r, schemes)
			if err != nil {
				w.Header().Set("WWW-Authenticate", BasicChallenge)
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// OptionalAuth attaches an Identity when one resolves and otherwise lets
// the request through anonymously.
func OptionalAuth(schemes ...Scheme) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, err := resolve(r, schemes); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), identity))
			}

			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, schemes []Scheme) (*Identity, error) {
	for _, scheme := range schemes {
		identity, err := scheme.Resolve(r)
		if errors.Is(err, ErrNoCredentials) {
			continue
		}

		if err != nil {
			if !errors.Is(err, ErrUnauthenticated) && !core.IsAppError(err) {
				core.LoggerFrom(r.Context()).Error("authentication failed",
					"scheme", scheme.Name(),
					"error", err,
				)
			}
			return nil, err
		}

		identity.Scheme = scheme.Name()
		return identity, nil
	}

	return nil, ErrNoCredentials
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := GetIdentity(r.Context())
		if !ok {
			core.JSONError(w, core.UnauthorizedError("authentication required"))
			return
		}

		if !identity.Admin {
			core.JSONError(w, core.NotAuthorizedError())
			return
		}

		next.ServeHTTP(w, r)
	})
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}

	switch {
	case errors.Is(err, core.ErrTokenExpired):
		core.JSONError(w, core.TokenExpiredError())
	case errors.Is(err, core.ErrTokenInvalid):
		core.JSONError(w, core.TokenInvalidError())
	case errors.Is(err, ErrNoCredentials):
		core.JSONError(w, core.UnauthorizedError("authentication required"))
	default:
		core.JSONError(w, core.UnauthorizedError("invalid credentials"))
	}
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*Identity)
	return identity, ok && identity != nil
}
