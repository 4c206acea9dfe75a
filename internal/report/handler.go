package report

import (
	"context"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/core/common/pagination"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ExportProjectVisits(ctx context.Context, params pagination.Params, filter resource.Filter) (*Export, error)
	VisitSummary(ctx context.Context, filter resource.Filter) ([]VisitSummary, error)
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
	r.Get("/project-visits/export", h.ExportProjectVisits)
	r.Get("/visits/summary", h.VisitSummary)
}

// ExportProjectVisits handles GET /reports/project-visits/export
func (h *Handler) ExportProjectVisits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter, appErr := resource.FilterFromQuery(q)
	if appErr != nil {
		h.HandleServiceError(w, appErr, "")
		return
	}

	export, err := h.Service.ExportProjectVisits(r.Context(), pagination.FromQuery(q), filter)
	if err != nil {
		h.Logger.Error("ExportProjectVisits: service error", "error", err)
		h.HandleServiceError(w, err, "Gagal mengekspor laporan")
		return
	}
	h.WriteAttachment(w, XLSXContentType, export.Filename, export.Body)
}

// VisitSummary handles GET /reports/visits/summary
func (h *Handler) VisitSummary(w http.ResponseWriter, r *http.Request) {
	filter, appErr := resource.FilterFromQuery(r.URL.Query())
	if appErr != nil {
		h.HandleServiceError(w, appErr, "")
		return
	}

	rows, err := h.Service.VisitSummary(r.Context(), filter)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat ringkasan kunjungan")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": rows})
}
