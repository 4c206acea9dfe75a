package resource

import (
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
)

// Handler serves list/get/create/update/delete for one resource. Failures carry the
// "Gagal ..." fallbacks the client shows, unless the service supplied its own message.
type Handler[T any] struct {
	*transport.BaseHandler
	Service ServiceAPI[T]
	noun    string
	loc     *time.Location
}

func NewHandler[T any](baseHandler *transport.BaseHandler, service ServiceAPI[T], noun string) *Handler[T] {
	return &Handler[T]{
		BaseHandler: baseHandler,
		Service:     service,
		noun:        noun,
	}
}

// WithLocation makes startDate and endDate calendar days in loc instead of UTC.
func (h *Handler[T]) WithLocation(loc *time.Location) *Handler[T] {
	h.loc = loc
	return h
}

// Routes mounts the collection and item endpoints on r.
func (h *Handler[T]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *Handler[T]) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())
	filter, appErr := FilterFromQueryIn(r.URL.Query(), h.loc)
	if appErr != nil {
		h.HandleServiceError(w, appErr, "")
		return
	}

	page, err := h.Service.List(r.Context(), params, filter)
	if err != nil {
		h.Logger.Error("Handler: list failed", "resource", h.noun, "error", err)
		h.HandleServiceError(w, err, fmt.Sprintf("Gagal memuat data %s", h.noun))
		return
	}

	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := h.Service.Get(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err, fmt.Sprintf("Gagal memuat data %s", h.noun))
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler[T]) Create(w http.ResponseWriter, r *http.Request) {
	var item T
	if err := h.DecodeJSON(r, &item); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	created, err := h.Service.Create(r.Context(), caller, &item)
	if err != nil {
		h.HandleServiceError(w, err, fmt.Sprintf("Gagal menyimpan %s", h.noun))
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var item T
	if err := h.DecodeJSON(r, &item); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	updated, err := h.Service.Update(r.Context(), caller, id, &item)
	if err != nil {
		h.HandleServiceError(w, err, fmt.Sprintf("Gagal memperbarui %s", h.noun))
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	caller, _ := auth.UserFromContext(r.Context())
	if err := h.Service.Delete(r.Context(), caller, id); err != nil {
		h.HandleServiceError(w, err, fmt.Sprintf("Gagal menghapus %s", h.noun))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
