// AngelaMos | 2026
// session.go

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// SessionStore maps hashed session tokens to user ids. Get and Delete
// return core.ErrNotFound for unknown or expired keys.
type SessionStore interface {
	Save(ctx context.Context, key string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, key string) (uuid.UUID, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

type SessionCookie struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

func (c SessionCookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c SessionCookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
