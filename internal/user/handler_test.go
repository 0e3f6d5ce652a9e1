// AngelaMos | 2026
// handler_test.go

package user

import (
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

// asUser fakes the authentication gate with a fixed identity taken from
// the X-Test-User header.
func asUser(ids map[string]*middleware.Identity) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := ids[r.Header.Get("X-Test-User")]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}
}

func newUserRouter(t *testing.T) (http.Handler, *User, *User) {
	t.Helper()
	svc, admin, alice := seedService(t)

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, asUser(map[string]*middleware.Identity{
		"root":  {UserID: admin.ID, Email: admin.Email, Admin: true},
		"alice": {UserID: alice.ID, Email: alice.Email},
	}))
	return r, admin, alice
}

func TestHandler_ListUsers(t *testing.T) {
	h, _, _ := newUserRouter(t)

	var users []map[string]any
	apitest.Handler(h).Get("/users").
		Header("X-Test-User", "root").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&users)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.NotContains(t, u, "salt")
		assert.NotContains(t, u, "password_hash")
	}

	apitest.Handler(h).Get("/users").
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusUnauthorized).
		Body(`{"success":false,"error":{"code":"NOT_AUTHORIZED","message":"Not authorized."}}`).
		End()
}

func TestHandler_GetUser(t *testing.T) {
	h, admin, alice := newUserRouter(t)

	apitest.Handler(h).Get("/users/"+alice.ID.String()).
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusOK).
		End()

	apitest.Handler(h).Get("/users/"+admin.ID.String()).
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusUnauthorized).
		End()

	apitest.Handler(h).Get("/users/"+uuid.NewString()).
		Header("X-Test-User", "root").
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(h).Get("/users/not-a-uuid").
		Header("X-Test-User", "root").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}

func TestHandler_CreateUser(t *testing.T) {
	h, _, _ := newUserRouter(t)

	var created UserResponse
	apitest.Handler(h).Post("/users").
		Header("X-Test-User", "root").
		JSON(`{"username":"user2","password":"pw2"}`).
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&created)
	assert.Equal(t, "user2", created.Email)
	assert.False(t, created.Admin)

	apitest.Handler(h).Post("/users").
		Header("X-Test-User", "root").
		JSON(`{"username":"user2","password":"pw2"}`).
		Expect(t).
		Status(http.StatusConflict).
		End()

	apitest.Handler(h).Post("/users").
		Header("X-Test-User", "root").
		JSON(`{"username":"user3"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.Handler(h).Post("/users").
		Header("X-Test-User", "alice").
		JSON(`{"username":"user4","password":"pw4"}`).
		Expect(t).
		Status(http.StatusUnauthorized).
		End()
}
