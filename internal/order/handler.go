package order

import (
	"bytes"
	"context"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateOrder(ctx context.Context, caller *auth.User, dto OrderDTO) (*Order, error)
	GetOrder(ctx context.Context, caller *auth.User, id int64) (*Order, error)
	ListOrders(ctx context.Context, caller *auth.User, params pagination.Params, filter resource.Filter) (*pagination.Page[*Order], error)
	UpdateOrder(ctx context.Context, caller *auth.User, id int64, dto OrderDTO) (*Order, error)
	DeleteOrder(ctx context.Context, caller *auth.User, id int64) error
	UpdateStatus(ctx context.Context, caller *auth.User, id int64, dto UpdateStatusDTO) (*Order, error)
	History(ctx context.Context, caller *auth.User, id int64) ([]HistoryEntry, error)
	View(caller *auth.User, o *Order) *View
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

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.ListOrders)
	r.Post("/", h.CreateOrder)
	r.Get("/{id}", h.GetOrder)
	r.Put("/{id}", h.UpdateOrder)
	r.Delete("/{id}", h.DeleteOrder)
	r.Put("/{id}/status", h.UpdateStatus)
	r.Get("/{id}/history", h.History)
	r.Get("/{id}/print", h.Print)
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request, op string) (*auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.Logger.Error(op + ": user not found in context")
		h.WriteError(w, http.StatusUnauthorized, "Sesi tidak valid")
		return nil, false
	}
	return user, true
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "ListOrders")
	if !ok {
		return
	}

	params := pagination.FromQuery(r.URL.Query())
	filter, appErr := resource.FilterFromQuery(r.URL.Query())
	if appErr != nil {
		h.HandleServiceError(w, appErr, "")
		return
	}

	page, err := h.Service.ListOrders(r.Context(), user, params, filter)
	if err != nil {
		h.Logger.Error("ListOrders: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err, "Gagal memuat data pesanan")
		return
	}

	views := make([]*View, len(page.Data))
	for i, o := range page.Data {
		views[i] = h.Service.View(user, o)
	}
	h.WriteJSON(w, http.StatusOK, pagination.Page[*View]{Data: views, Pagination: page.Pagination})
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "CreateOrder")
	if !ok {
		return
	}

	var dto OrderDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.Logger.Error("CreateOrder: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.Service.CreateOrder(r.Context(), user, dto)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err, "Gagal menyimpan pesanan")
		return
	}

	h.Logger.Info("CreateOrder: order created", "order_id", o.ID, "user_id", user.ID)
	h.WriteJSON(w, http.StatusCreated, h.Service.View(user, o))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "GetOrder")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	o, err := h.Service.GetOrder(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data pesanan")
		return
	}
	h.WriteJSON(w, http.StatusOK, h.Service.View(user, o))
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "UpdateOrder")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var dto OrderDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.Service.UpdateOrder(r.Context(), user, id, dto)
	if err != nil {
		h.Logger.Error("UpdateOrder: service error", "error", err, "order_id", id)
		h.HandleServiceError(w, err, "Gagal memperbarui pesanan")
		return
	}
	h.WriteJSON(w, http.StatusOK, h.Service.View(user, o))
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "DeleteOrder")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteOrder(r.Context(), user, id); err != nil {
		h.HandleServiceError(w, err, "Gagal menghapus pesanan")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateStatus handles PUT /orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "UpdateStatus")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.Service.UpdateStatus(r.Context(), user, id, dto)
	if err != nil {
		h.Logger.Error("UpdateStatus: service error", "error", err, "order_id", id, "status", dto.Status)
		h.HandleServiceError(w, err, "Gagal memperbarui status pesanan")
		return
	}

	h.Logger.Info("UpdateStatus: order status updated",
		"order_id", id,
		"status", dto.Status,
		"is_active", dto.IsActive,
		"user_id", user.ID)
	h.WriteJSON(w, http.StatusOK, h.Service.View(user, o))
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "History")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	entries, err := h.Service.History(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat riwayat pesanan")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": entries})
}

// Print handles GET /orders/{id}/print
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	user, ok := h.caller(w, r, "Print")
	if !ok {
		return
	}
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}

	o, err := h.Service.GetOrder(r.Context(), user, id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data pesanan")
		return
	}

	var buf bytes.Buffer
	if err := RenderPrint(&buf, o); err != nil {
		h.Logger.Error("Print: template failed", "error", err, "order_id", id)
		h.WriteError(w, http.StatusInternalServerError, "Gagal mencetak pesanan")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.Logger.Error("Print: write failed", "error", err, "order_id", id)
	}
}
