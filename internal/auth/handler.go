package auth

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/frahmantamala/distribution-admin/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.Service.Authenticate(r.Context(), dto)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal masuk, silakan coba lagi")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := dto.Validate(); err != nil {
		h.HandleServiceError(w, err, "")
		return
	}

	resp, err := h.Service.RefreshTokens(r.Context(), dto.RefreshToken)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memperbarui sesi")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

// Logout only checks the token; tokens are stateless and the client drops its copy.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "Token tidak ditemukan")
		return
	}

	if _, err := h.Service.ValidateAccessToken(token); err != nil {
		h.WriteError(w, http.StatusUnauthorized, "Token tidak valid")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.Logger.Warn("auth middleware: missing authorization token", "path", r.URL.Path)
			h.WriteError(w, http.StatusUnauthorized, "Token tidak ditemukan")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token validation failed", "error", err)
			h.HandleServiceError(w, err, "Token tidak valid")
			return
		}

		u, err := h.Service.GetActiveUser(r.Context(), claims.UserID)
		if err != nil {
			h.Logger.Warn("auth middleware: user not active", "user_id", claims.UserID, "error", err)
			h.HandleServiceError(w, internal.ErrUserInactive, "")
			return
		}

		ctx := ContextWithUser(r.Context(), u)
		ctx = logger.With(ctx, "user_id", u.ID, "role", int(u.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
