package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/core/role"
)

// RBACAuthorization gates routes by the caller's numeric role.
type RBACAuthorization struct {
	logger *slog.Logger
}

func NewRBACAuthorization(logger *slog.Logger) *RBACAuthorization {
	if logger == nil {
		logger = slog.Default()
	}
	return &RBACAuthorization{logger: logger}
}

// Check wraps next so that only the given roles (and Superadmin) reach it.
func (ra *RBACAuthorization) Check(next http.HandlerFunc, roles ...role.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			ra.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !user.HasRole(roles...) {
			ra.logger.WarnContext(r.Context(), "access denied: role not allowed",
				"user_id", user.ID,
				"role", int(user.Role),
				"allowed_roles", role.Join(roles),
				"path", r.URL.Path)
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireRoles is the chi middleware form of Check.
func (ra *RBACAuthorization) RequireRoles(roles ...role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return ra.Check(next.ServeHTTP, roles...)
	}
}

func (ra *RBACAuthorization) RequireSuperadmin() func(http.Handler) http.Handler {
	return ra.RequireRoles(role.Superadmin)
}

// RequireWriteAccess leaves safe methods open to every authenticated user and gates the rest.
func (ra *RBACAuthorization) RequireWriteAccess(roles ...role.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		gated := ra.Check(next.ServeHTTP, roles...)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				gated(w, r)
			}
		})
	}
}
