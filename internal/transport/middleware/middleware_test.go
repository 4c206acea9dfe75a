package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal/transport/middleware"
	chiMiddleware "github.com/go-chi/chi/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RequestID", func() {
	It("echoes the client's id and exposes it through chi", func() {
		var seen string
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = chiMiddleware.GetReqID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(seen).To(Equal("abc-123"))
		Expect(rec.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
	})

	It("mints an id when the client sends none", func() {
		h := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Header().Get(middleware.RequestIDHeader)).To(HaveLen(36))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into a 500 with the generic message", func() {
		lg := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		h := middleware.RecoveryMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		var body map[string]interface{}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body["message"]).To(Equal("Terjadi kesalahan pada server"))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	var (
		buf *bytes.Buffer
		lg  *slog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		lg = slog.New(slog.NewJSONHandler(buf, nil))
	})

	It("masks credentials in request and response bodies", func() {
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token":"jwt-value","user":{"username":"andi"}}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"username":"andi","password":"rahasia"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer xyz")
		h.ServeHTTP(httptest.NewRecorder(), req)

		out := buf.String()
		Expect(out).To(ContainSubstring("andi"))
		Expect(out).NotTo(ContainSubstring("rahasia"))
		Expect(out).NotTo(ContainSubstring("jwt-value"))
		Expect(out).NotTo(ContainSubstring("Bearer xyz"))
		Expect(out).To(ContainSubstring("[FILTERED]"))
	})

	It("keeps the request body readable for the handler", func() {
		var got string
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := new(bytes.Buffer)
			_, _ = b.ReadFrom(r.Body)
			got = b.String()
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"customer":"Toko"}`)))
		Expect(got).To(Equal(`{"customer":"Toko"}`))
	})

	It("buffers only the logged prefix of a large request body", func() {
		var got int
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b := new(bytes.Buffer)
			_, _ = b.ReadFrom(r.Body)
			got = b.Len()
		}))

		large := strings.Repeat("a", 10000)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(large))
		req.Header.Set("Content-Type", "text/plain")
		h.ServeHTTP(httptest.NewRecorder(), req)

		Expect(got).To(Equal(10000))
		Expect(buf.String()).To(ContainSubstring("...[TRUNCATED]"))
		Expect(buf.String()).NotTo(ContainSubstring(large[:4097]))
	})

	It("does not dump file downloads", func() {
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(buf.String()).To(ContainSubstring("[BINARY image/png]"))
	})

	It("logs client errors at warn level", func() {
		h := middleware.LoggingMiddleware(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(buf.String()).To(ContainSubstring(`"level":"WARN"`))
		Expect(buf.String()).To(ContainSubstring(`"status_code":404`))
	})
})

var _ = Describe("CORS", func() {
	It("answers preflight for an allowed origin", func() {
		h := middleware.CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:5173"))
	})

	It("does not allow unknown origins", func() {
		h := middleware.CORS([]string{"http://localhost:5173"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(BeEmpty())
	})
})
