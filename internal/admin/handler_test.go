// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

type fixedCount struct {
	n   int
	err error
}

func (c fixedCount) Count(context.Context) (int, error) { return c.n, c.err }

func asIdentity(identity *middleware.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}
}

func newAdminRouter(cfg HandlerConfig, identity *middleware.Identity) http.Handler {
	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, asIdentity(identity), middleware.RequireAdmin)
	return r
}

func TestGetSystemStats(t *testing.T) {
	h := newAdminRouter(HandlerConfig{
		DBStats:     func() sql.DBStats { return sql.DBStats{MaxOpenConnections: 25} },
		DBPing:      func(context.Context) error { return nil },
		SessionPing: func(context.Context) error { return errors.New("down") },
		Users:       fixedCount{n: 3},
		Entries:     fixedCount{n: 12},
	}, &middleware.Identity{UserID: uuid.New(), Admin: true})

	var body SystemStatsResponse
	apitest.Handler(h).Get("/admin/stats").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&body)

	assert.Equal(t, 3, body.Journal.Users)
	assert.Equal(t, 12, body.Journal.Entries)
	assert.True(t, body.Database.Healthy)
	assert.Equal(t, 25, body.Database.Stats.MaxOpenConnections)
	assert.False(t, body.Sessions.Healthy)
	assert.Nil(t, body.Redis)
	assert.NotEmpty(t, body.Runtime.GoVersion)
}

func TestGetSystemStats_CountFailure(t *testing.T) {
	h := newAdminRouter(HandlerConfig{
		Users: fixedCount{err: errors.New("db gone")},
	}, &middleware.Identity{UserID: uuid.New(), Admin: true})

	apitest.Handler(h).Get("/admin/stats").
		Expect(t).
		Status(http.StatusInternalServerError).
		End()
}

func TestAdminOnly(t *testing.T) {
	h := newAdminRouter(HandlerConfig{}, &middleware.Identity{UserID: uuid.New()})

	for _, path := range []string{"/admin/stats", "/admin/stats/db", "/admin/stats/runtime"} {
		apitest.Handler(h).Get(path).
			Expect(t).
			Status(http.StatusUnauthorized).
			Body(`{"success":false,"error":{"code":"NOT_AUTHORIZED","message":"Not authorized."}}`).
			End()
	}
}

func TestGetRuntimeStats(t *testing.T) {
	h := newAdminRouter(HandlerConfig{}, &middleware.Identity{UserID: uuid.New(), Admin: true})

	var body RuntimeStats
	apitest.Handler(h).Get("/admin/stats/runtime").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&body)

	assert.Positive(t, body.NumCPU)
}
