// AngelaMos | 2026
// recoverer.go

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/carterperez-dev/journal-backend/internal/core"
)

// Recoverer turns a handler panic into the regular 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			core.LoggerFrom(r.Context()).Error("panic recovered",
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			core.InternalServerError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}

// ErrorDetail decides per request whether 500 responses include the
// underlying error text.
func ErrorDetail(expose bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(core.WithErrorDetail(r.Context(), expose)))
		})
	}
}
