package category

import (
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetAllCategories() ([]CategoryResponse, error)
	IsValidCategory(name string) bool
	List(params pagination.Params, search string) (*pagination.Page[*Category], error)
	GetByID(id int64) (*Category, error)
	Create(dto CategoryDTO) (*Category, error)
	Update(id int64, dto CategoryDTO) (*Category, error)
	Delete(id int64) error
	Activate(id int64) (*Category, error)
	Deactivate(id int64) (*Category, error)
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

func (h *Handler) Routes(writeGate func(http.Handler) http.Handler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/active", h.GetCategories)
		r.Get("/{id}", h.Get)
		r.With(writeGate).Post("/", h.Create)
		r.With(writeGate).Put("/{id}", h.Update)
		r.With(writeGate).Delete("/{id}", h.Delete)
		r.With(writeGate).Post("/{id}/activate", h.Activate)
		r.With(writeGate).Post("/{id}/deactivate", h.Deactivate)
	}
}

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetAllCategories()
	if err != nil {
		h.Logger.Error("GetCategories: failed to get categories", "error", err)
		h.HandleServiceError(w, err, "Gagal memuat data kategori")
		return
	}

	h.WriteJSON(w, http.StatusOK, CategoriesResponse{
		Categories: categories,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromQuery(r.URL.Query())
	page, err := h.Service.List(params, r.URL.Query().Get("search"))
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data kategori")
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
	cat, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data kategori")
		return
	}
	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CategoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.Service.Create(dto)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal menyimpan kategori")
		return
	}
	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	var dto CategoryDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := h.Service.Update(id, dto)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memperbarui kategori")
		return
	}
	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Service.Delete(id); err != nil {
		h.HandleServiceError(w, err, "Gagal menghapus kategori")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.Activate)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.Service.Deactivate)
}

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn func(int64) (*Category, error)) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := fn(id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memperbarui kategori")
		return
	}
	h.WriteJSON(w, http.StatusOK, cat)
}
