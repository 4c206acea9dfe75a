package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/frahmantamala/distribution-admin/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(ctx context.Context, params pagination.Params, search string, r role.Role) (*pagination.Page[*User], error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, caller *auth.User, dto CreateUserDTO) (*User, error)
	Update(ctx context.Context, caller *auth.User, id int64, dto UpdateUserDTO) (*User, error)
	Delete(ctx context.Context, caller *auth.User, id int64) error
}

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

// Routes mounts the user management endpoints. writeGate wraps the mutating ones.
func (h *Handler) Routes(writeGate func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/me", h.GetCurrentUser)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.With(writeGate).Post("/", h.Create)
		r.With(writeGate).Put("/{id}", h.Update)
		r.With(writeGate).Delete("/{id}", h.Delete)
	}
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.Logger.Error("GetCurrentUser: user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "Sesi tidak valid")
		return
	}

	u, err := h.Service.GetByID(r.Context(), caller.ID)
	if err != nil {
		h.Logger.Error("GetCurrentUser: service GetByID failed", "user_id", caller.ID, "error", err)
		h.HandleServiceError(w, err, "Gagal memuat profil")
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := pagination.FromQuery(q)

	var filterRole role.Role
	if raw := q.Get("role"); raw != "" {
		parsed, err := role.Parse(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "Role tidak dikenal")
			return
		}
		filterRole = parsed
	}

	page, err := h.Service.List(r.Context(), params, q.Get("search"), filterRole)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data pengguna")
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data pengguna")
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	u, err := h.Service.Create(r.Context(), caller, dto)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal menyimpan pengguna")
		return
	}
	h.WriteJSON(w, http.StatusCreated, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var dto UpdateUserDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	u, err := h.Service.Update(r.Context(), caller, id, dto)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memperbarui pengguna")
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	if err := h.Service.Delete(r.Context(), caller, id); err != nil {
		h.HandleServiceError(w, err, "Gagal menghapus pengguna")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
