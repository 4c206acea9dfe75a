package quotation

import (
	"context"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/transport"
)

type ServiceAPI interface {
	Approve(ctx context.Context, caller *auth.User, id int64) (*Quotation, error)
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

// Approve handles POST /quotations/{id}/approve
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, ok := auth.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Sesi tidak valid")
		return
	}

	q, err := h.Service.Approve(r.Context(), caller, id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal menyetujui penawaran")
		return
	}
	h.WriteJSON(w, http.StatusOK, q)
}
