// AngelaMos | 2026
// handler_test.go

package entry

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/steinfletcher/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

const notFoundBody = `{"success":false,"error":{"code":"NOT_FOUND","message":"entry not found"}}`

type entryFixture struct {
	handler http.Handler
	service *Service
	alice   *middleware.Identity
	bob     *middleware.Identity
}

func newEntryRouter(t *testing.T) entryFixture {
	t.Helper()
	svc := NewService(newMemRepo())
	f := entryFixture{
		service: svc,
		alice:   &middleware.Identity{UserID: uuid.New(), Email: "alice"},
		bob:     &middleware.Identity{UserID: uuid.New(), Email: "bob"},
	}
	ids := map[string]*middleware.Identity{"alice": f.alice, "bob": f.bob}

	gate := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := ids[r.Header.Get("X-Test-User")]
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(middleware.WithIdentity(r.Context(), identity)))
		})
	}

	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, gate)
	f.handler = r
	return f
}

func (f entryFixture) seed(t *testing.T, owner *middleware.Identity) *Entry {
	t.Helper()
	e, err := f.service.Create(context.Background(), owner.Subject(), createReq("seeded"))
	require.NoError(t, err)
	return e
}

func TestHandler_CreateEntry(t *testing.T) {
	f := newEntryRouter(t)

	apitest.Handler(f.handler).Post("/entries").
		Header("X-Test-User", "alice").
		JSON(`{"entry":"hello","mood":"calm","location":{"type":"Point","coordinates":[13.4,52.5]}}`).
		Expect(t).
		Status(http.StatusOK).
		Body("Entry saved.").
		End()

	entries, err := f.service.List(context.Background(), f.alice.Subject())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Entry)
}

func TestHandler_CreateEntry_Invalid(t *testing.T) {
	f := newEntryRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing entry", `{"mood":"calm","location":{"type":"Point","coordinates":[1,2]}}`},
		{"empty entry", `{"entry":"","mood":"calm","location":{"type":"Point","coordinates":[1,2]}}`},
		{"missing mood", `{"entry":"x","location":{"type":"Point","coordinates":[1,2]}}`},
		{"missing location", `{"entry":"x","mood":"calm"}`},
		{"null coordinates", `{"entry":"x","mood":"calm","location":{"type":"Point","coordinates":[null,null]}}`},
		{"wrong geometry", `{"entry":"x","mood":"calm","location":{"type":"Polygon","coordinates":[1,2]}}`},
		{"one coordinate", `{"entry":"x","mood":"calm","location":{"type":"Point","coordinates":[1]}}`},
		{"malformed", `{"entry":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apitest.Handler(f.handler).Post("/entries").
				Header("X-Test-User", "alice").
				JSON(tc.body).
				Expect(t).
				Status(http.StatusBadRequest).
				End()
		})
	}

	entries, err := f.service.List(context.Background(), f.alice.Subject())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHandler_GetEntry(t *testing.T) {
	f := newEntryRouter(t)
	e := f.seed(t, f.alice)

	var body map[string]any
	apitest.Handler(f.handler).Get("/entries/"+e.ID.String()).
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&body)
	assert.Equal(t, "seeded", body["entry"])
	assert.Equal(t, f.alice.UserID.String(), body["user_id"])

	apitest.Handler(f.handler).Get("/entries/"+e.ID.String()).
		Header("X-Test-User", "bob").
		Expect(t).
		Status(http.StatusNotFound).
		Body(notFoundBody).
		End()

	apitest.Handler(f.handler).Get("/entries/not-a-uuid").
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusNotFound).
		Body(notFoundBody).
		End()
}

func TestHandler_ListEntries(t *testing.T) {
	f := newEntryRouter(t)
	f.seed(t, f.alice)
	f.seed(t, f.bob)

	var entries []map[string]any
	apitest.Handler(f.handler).Get("/entries").
		Header("X-Test-User", "bob").
		Expect(t).
		Status(http.StatusOK).
		End().
		JSON(&entries)
	require.Len(t, entries, 1)
	assert.Equal(t, f.bob.UserID.String(), entries[0]["user_id"])
}

func TestHandler_UpdateEntry(t *testing.T) {
	f := newEntryRouter(t)
	e := f.seed(t, f.alice)
	path := "/entries/" + e.ID.String()

	apitest.Handler(f.handler).Put(path).
		Header("X-Test-User", "alice").
		JSON(`{"entry":"edited","mood":"calm","location":{"type":"Point","coordinates":[1,2]}}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	apitest.Handler(f.handler).Put(path).
		Header("X-Test-User", "alice").
		JSON(`{"entry":"edited","mood":"calm","location":{"type":"Point","coordinates":[1,2]},"weather":""}`).
		Expect(t).
		Status(http.StatusBadRequest).
		End()

	full := `{"entry":"edited","mood":"calm","location":{"type":"Point","coordinates":[1,2]},"weather":"snow"}`

	apitest.Handler(f.handler).Put(path).
		Header("X-Test-User", "bob").
		JSON(full).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(f.handler).Put(path).
		Header("X-Test-User", "alice").
		JSON(full).
		Expect(t).
		Status(http.StatusOK).
		Body("Entry saved.").
		End()

	got, err := f.service.Get(context.Background(), f.alice.Subject(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Entry)
}

func TestHandler_UpdateEntry_ExistenceBeforeBody(t *testing.T) {
	f := newEntryRouter(t)
	e := f.seed(t, f.alice)

	apitest.Handler(f.handler).Put("/entries/"+e.ID.String()).
		Header("X-Test-User", "bob").
		JSON(`{"entry":""}`).
		Expect(t).
		Status(http.StatusNotFound).
		Body(notFoundBody).
		End()

	apitest.Handler(f.handler).Put("/entries/"+uuid.NewString()).
		Header("X-Test-User", "alice").
		JSON(`{"entry":`).
		Expect(t).
		Status(http.StatusNotFound).
		Body(notFoundBody).
		End()

	got, err := f.service.Get(context.Background(), f.alice.Subject(), e.ID)
	require.NoError(t, err)
	assert.Equal(t, "seeded", got.Entry)
}

func TestHandler_DeleteEntry(t *testing.T) {
	f := newEntryRouter(t)
	e := f.seed(t, f.alice)
	path := "/entries/" + e.ID.String()

	apitest.Handler(f.handler).Delete(path).
		Header("X-Test-User", "bob").
		Expect(t).
		Status(http.StatusNotFound).
		End()

	apitest.Handler(f.handler).Delete(path).
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusOK).
		Body("Entry deleted.").
		End()

	apitest.Handler(f.handler).Delete(path).
		Header("X-Test-User", "alice").
		Expect(t).
		Status(http.StatusNotFound).
		End()
}
