package palet

import (
	"context"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Scan(ctx context.Context, code string) (*ScanResult, error)
	Stocks(ctx context.Context, paletID int64) ([]Stock, error)
	QRCode(ctx context.Context, paletID int64) (string, []byte, error)
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

func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Scan(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memindai palet")
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) Stocks(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	stocks, err := h.Service.Stocks(r.Context(), id)
	if err != nil {
		h.HandleServiceError(w, err, "Gagal memuat data stok")
		return
	}
	if stocks == nil {
		stocks = []Stock{}
	}
	h.WriteJSON(w, http.StatusOK, stocks)
}

func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	id, err := h.ParseIDParam(r, "id")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	filename, png, err := h.Service.QRCode(r.Context(), id)
	if err != nil {
		h.Logger.Error("Handler: qr code generation failed", "palet_id", id, "error", err)
		h.HandleServiceError(w, err, "Gagal membuat QR code")
		return
	}
	h.WriteAttachment(w, "image/png", filename, png)
}
