// AngelaMos | 2026
// routes.go

package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/journal-backend/internal/admin"
	"github.com/carterperez-dev/journal-backend/internal/auth"
	"github.com/carterperez-dev/journal-backend/internal/config"
	"github.com/carterperez-dev/journal-backend/internal/entry"
	"github.com/carterperez-dev/journal-backend/internal/health"
	"github.com/carterperez-dev/journal-backend/internal/middleware"
	"github.com/carterperez-dev/journal-backend/internal/user"
	"github.com/carterperez-dev/journal-backend/internal/web"
)

const loginScope = "login"

// Deps is everything Mount needs to assemble the application. Redis may
// be nil, which disables rate limiting. Admin may be nil.
type Deps struct {
	Config  *config.Config
	Logger  *slog.Logger
	Redis   *redis.Client
	Health  *health.Handler
	Auth    *auth.Service
	JWT     *auth.JWTManager
	Users   *user.Service
	Entries *entry.Service
	Admin   *admin.Handler
}

// Mount installs the middleware chain and every route on r.
func Mount(r chi.Router, d Deps) error {
	cfg := d.Config

	cookie := auth.SessionCookie{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.Session.SecureCookie,
	}

	webHandler, err := web.NewHandler(web.Config{
		Sessions: d.Auth,
		Cookie:   cookie,
		Entries:  d.Entries,
		Users:    d.Users,
	})
	if err != nil {
		return fmt.Errorf("build web handler: %w", err)
	}

	trustedProxies, err := cfg.RateLimit.TrustedProxyPrefixes()
	if err != nil {
		return err
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientIP(trustedProxies))
	r.Use(middleware.ErrorDetail(!cfg.IsProduction()))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recoverer)
	if d.Redis != nil {
		r.Use(middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
			Limit: middleware.Every(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen:   true,
			BypassFunc: isHealthCheck,
		}).Handler)
	}
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.CORS))

	basic := auth.NewBasicScheme(d.Auth)
	bearer := auth.NewBearerScheme(d.Auth)
	session := auth.NewSessionScheme(d.Auth, cookie)

	apiAuth := middleware.Authenticator(basic, bearer)
	webSession := middleware.OptionalAuth(session)

	tokenGuards := []func(http.Handler) http.Handler{middleware.Authenticator(basic)}
	var webLoginGuard func(http.Handler) http.Handler

	if d.Redis != nil {
		loginLimit := middleware.PerMinute(cfg.RateLimit.LoginRequests, cfg.RateLimit.LoginBurst)

		tokenGuards = append([]func(http.Handler) http.Handler{
			middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
				Limit:    loginLimit,
				KeyFunc:  middleware.KeyByScope(loginScope),
				FailOpen: true,
			}).Handler,
		}, tokenGuards...)

		webLoginGuard = middleware.NewRateLimiter(d.Redis, middleware.RateLimitConfig{
			Limit:     loginLimit,
			KeyFunc:   middleware.KeyByScope(loginScope),
			FailOpen:  true,
			OnLimited: redirectLoginFailed,
		}).Handler
	}

	if d.Health != nil {
		d.Health.RegisterRoutes(r)
	}

	auth.NewHandler(d.Auth, d.JWT).RegisterRoutes(r, tokenGuards...)
	user.NewHandler(d.Users).RegisterRoutes(r, apiAuth)
	entry.NewHandler(d.Entries).RegisterRoutes(r, apiAuth)

	if d.Admin != nil {
		d.Admin.RegisterRoutes(r, apiAuth, middleware.RequireAdmin)
	}

	webHandler.RegisterRoutes(r, webSession, webLoginGuard)
	r.NotFound(webSession(http.HandlerFunc(webHandler.NotFound)).ServeHTTP)

	return nil
}

func isHealthCheck(r *http.Request) bool {
	switch r.URL.Path {
	case "/healthz", "/livez", "/readyz":
		return true
	}
	return false
}

func redirectLoginFailed(w http.ResponseWriter, r *http.Request, _ *redis_rate.Result) {
	http.Redirect(w, r, "/?login=failed", http.StatusSeeOther)
}
