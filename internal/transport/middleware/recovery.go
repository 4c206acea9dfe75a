package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/frahmantamala/distribution-admin/pkg/logger"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// RecoveryMiddleware turns a handler panic into a 500 with the generic client message.
func RecoveryMiddleware(lg *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.FromOr(r.Context(), lg).Error("panic recovered",
					"error", rec,
					"request_id", chiMiddleware.GetReqID(r.Context()),
					"method", r.Method,
					"url", r.URL.String(),
					"stack", string(debug.Stack()))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]interface{}{
					"code":    http.StatusInternalServerError,
					"message": "Terjadi kesalahan pada server",
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
