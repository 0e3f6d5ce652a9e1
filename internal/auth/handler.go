// AngelaMos | 2026
// handler.go

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/journal-backend/internal/core"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
)

type Handler struct {
	service *Service
	jwt     *JWTManager
}

func NewHandler(service *Service, jwt *JWTManager) *Handler {
	return &Handler{service: service, jwt: jwt}
}

// RegisterRoutes mounts the token endpoint behind the given middlewares
// (Basic authentication and the login rate limit) plus the public JWKS.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	guards ...func(http.Handler) http.Handler,
) {
	r.Get("/.well-known/jwks.json", h.jwt.GetJWKSHandler())

	r.Route("/auth", func(r chi.Router) {
		r.Use(guards...)
		r.Post("/token", h.IssueToken)
	})
}

func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		core.Unauthorized(w, "")
		return
	}

	resp, err := h.service.IssueAccessToken(identity.UserID)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, resp)
}
