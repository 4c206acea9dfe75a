package navigation

import (
	"context"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/transport"
)

type ServiceAPI interface {
	Menu(ctx context.Context, caller *auth.User) ([]MenuItem, error)
	ListRoutePermissions(ctx context.Context) ([]RoutePermissionView, error)
	SetRoutePermission(ctx context.Context, caller *auth.User, dto SetRoutePermissionDTO) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// Menu handles GET /navigation
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Sesi tidak valid")
		return
	}

	items, err := h.Service.Menu(r.Context(), caller)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat menu")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": items})
}

// ListRoutePermissions handles GET /route-permissions
func (h *Handler) ListRoutePermissions(w http.ResponseWriter, r *http.Request) {
	views, err := h.Service.ListRoutePermissions(r.Context())
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat hak akses menu")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}

// SetRoutePermission handles PUT /route-permissions
func (h *Handler) SetRoutePermission(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Sesi tidak valid")
		return
	}

	var dto SetRoutePermissionDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Service.SetRoutePermission(r.Context(), caller, dto); err != nil {
		h.Logger.Error("SetRoutePermission: service error", "error", err, "path", dto.Path)
		h.HandleServiceError(w, err, "Gagal menyimpan hak akses menu")
		return
	}

	views, err := h.Service.ListRoutePermissions(r.Context())
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat hak akses menu")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": views})
}
