// AngelaMos | 2026
// handler_test.go

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

func newTokenRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	NewHandler(svc, svc.jwt).RegisterRoutes(
		r,
		middleware.Authenticator(NewBasicScheme(svc)),
	)
	return r
}
