package resource_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Generic Handler", func() {
	var (
		router  *chi.Mux
		slogger *slog.Logger
		hooks   resource.Hooks[fieldNote]
	)

	build := func() {
		repo := resource.NewRepository[fieldNote](openNotesDB(), noteOptions)
		svc := resource.NewService[fieldNote](repo, "catatan", hooks, slogger)
		h := resource.NewHandler[fieldNote](transport.NewBaseHandler(slogger), svc, "catatan")

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				u := &auth.User{ID: 7, Username: "andi", Role: role.Admin}
				next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), u)))
			})
		})
		router.Route("/api/notes", h.Routes)
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

	BeforeEach(func() {
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		hooks = resource.Hooks[fieldNote]{
			BeforeCreate: func(_ context.Context, caller *auth.User, n *fieldNote) error {
				n.Username = caller.Username
				return nil
			},
		}
	})

	It("should create, list with pagination metadata, update and delete", func() {
		build()

		rec := do(http.MethodPost, "/api/notes", `{"title":"Kunjungan pagi","body":"ok","notedAt":"2024-03-01T08:00:00Z"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))
		var created fieldNote
		Expect(json.Unmarshal(rec.Body.Bytes(), &created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Username).To(Equal("andi"))

		rec = do(http.MethodGet, "/api/notes?page=1&limit=5&username=andi", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var page struct {
			Data       []fieldNote            `json:"data"`
			Pagination map[string]interface{} `json:"pagination"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &page)).To(Succeed())
		Expect(page.Data).To(HaveLen(1))
		Expect(page.Pagination).To(HaveKeyWithValue("currentPage", float64(1)))
		Expect(page.Pagination).To(HaveKeyWithValue("totalPages", float64(1)))
		Expect(page.Pagination).To(HaveKeyWithValue("totalItems", float64(1)))
		Expect(page.Pagination).To(HaveKeyWithValue("itemsPerPage", float64(5)))

		path := "/api/notes/" + jsonID(created.ID)
		rec = do(http.MethodPut, path, `{"title":"Kunjungan sore","body":"","notedAt":"2024-03-01T16:00:00Z"}`)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var updated fieldNote
		Expect(json.Unmarshal(rec.Body.Bytes(), &updated)).To(Succeed())
		Expect(updated.Title).To(Equal("Kunjungan sore"))

		Expect(do(http.MethodDelete, path, "").Code).To(Equal(http.StatusNoContent))
		Expect(do(http.MethodGet, path, "").Code).To(Equal(http.StatusNotFound))
	})

	It("should surface the server's validation message verbatim on a failed create", func() {
		hooks.Validate = func(n *fieldNote) *internal.AppError {
			return internal.NewValidationFieldError("title", "Judul sudah dipakai kunjungan lain", internal.ErrCodeValidationFailed)
		}
		build()

		rec := do(http.MethodPost, "/api/notes", `{"title":"dup"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal("Judul sudah dipakai kunjungan lain"))
	})

	It("should fall back to the localized message on unexpected failures", func() {
		hooks.BeforeCreate = func(context.Context, *auth.User, *fieldNote) error {
			return context.DeadlineExceeded
		}
		build()

		rec := do(http.MethodPost, "/api/notes", `{"title":"x"}`)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))

		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal("Gagal menyimpan catatan"))
	})

	It("should reject a non-numeric id", func() {
		build()
		Expect(do(http.MethodGet, "/api/notes/abc", "").Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a malformed body", func() {
		build()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewBufferString("{")))
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
