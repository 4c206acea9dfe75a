package order_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/order"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// failingRepository accepts reads but fails every write with a plain error.
type failingRepository struct {
	*mockOrderRepository
}

func (f failingRepository) Create(context.Context, *order.Order) error {
	return errors.New("connection reset by peer")
}

var _ = Describe("Order Handler", func() {
	var (
		repo    order.Repository
		caller  *auth.User
		router  *chi.Mux
		slogger *slog.Logger
	)

	build := func() {
		svc := order.NewService(repo, nil, slogger)
		h := order.NewHandler(transport.NewBaseHandler(slogger), svc)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), caller)))
			})
		})
		router.Route("/api/orders", h.Routes)
	}

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	message := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Message string `json:"message"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		return body.Message
	}

	const validBody = `{"customer":"Toko Maju","orderDate":"2024-03-04T00:00:00Z",
		"items":[{"productName":"Semen","quantity":3,"unitValue":"1000"}]}`

	BeforeEach(func() {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockOrderRepository()
		caller = user(1, "sales1", role.SalesRetail)
	})

	It("should create an order and return its badge", func() {
		build()
		rec := do(http.MethodPost, "/api/orders", validBody)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		var view struct {
			ID         int64  `json:"id"`
			TotalValue string `json:"totalValue"`
			Badge      order.Badge
			Actions    []order.Action
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &view)).To(Succeed())
		Expect(view.ID).To(Equal(int64(1)))
		Expect(view.TotalValue).To(Equal("3000"))
		Expect(view.Badge.Label).To(Equal("Menunggu"))
		Expect(view.Actions).To(BeEmpty())
	})

	It("should surface the server's validation message verbatim", func() {
		build()
		rec := do(http.MethodPost, "/api/orders", `{"customer":"Toko Maju","orderDate":"2024-03-04T00:00:00Z","items":[]}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(message(rec)).To(Equal("Pesanan harus memiliki minimal satu item"))
	})

	It("should fall back to the localized message on unexpected failures", func() {
		repo = failingRepository{newMockOrderRepository()}
		build()
		rec := do(http.MethodPost, "/api/orders", validBody)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(message(rec)).To(Equal("Gagal menyimpan pesanan"))
		Expect(rec.Body.String()).NotTo(ContainSubstring("connection reset"))
	})

	It("should refuse a status change the role cannot make", func() {
		build()
		Expect(do(http.MethodPost, "/api/orders", validBody).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPut, "/api/orders/1/status", `{"status":"approved","isActive":true}`)
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(message(rec)).To(Equal("Aksi tidak diizinkan untuk status pesanan ini"))
	})

	It("should apply a permitted status change", func() {
		build()
		Expect(do(http.MethodPost, "/api/orders", validBody).Code).To(Equal(http.StatusCreated))

		caller = user(3, "pricing", role.Pricing)
		rec := do(http.MethodPut, "/api/orders/1/status", `{"status":"priceApproved","isActive":true,"description":"ok"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))

		var view struct {
			PriceApproved   *order.StatusRecord `json:"priceApproved"`
			IsPriceApproved bool                `json:"isPriceApproved"`
			Badge           order.Badge         `json:"badge"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &view)).To(Succeed())
		Expect(view.PriceApproved.ActionBy).To(Equal("pricing"))
		Expect(view.IsPriceApproved).To(BeTrue())
		Expect(view.Badge.Label).To(Equal("Harga Disetujui"))

		rec = do(http.MethodGet, "/api/orders/1/history", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"status":"priceApproved"`))
	})

	It("should render a printable page", func() {
		build()
		Expect(do(http.MethodPost, "/api/orders", validBody).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodGet, "/api/orders/1/print", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Header().Get("Content-Type")).To(HavePrefix("text/html"))
		Expect(rec.Body.String()).To(ContainSubstring("window.print()"))
		Expect(rec.Body.String()).To(ContainSubstring("Toko Maju"))
		Expect(rec.Body.String()).To(ContainSubstring("3000.00"))
	})

	It("should reject a malformed id", func() {
		build()
		rec := do(http.MethodGet, "/api/orders/abc", "")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
