package category_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal/category"
	categoryPostgres "github.com/frahmantamala/distribution-admin/internal/category/postgres"
	categoryDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/category"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    category.RepositoryAPI
		service *category.Service
		handler *category.Handler
		router  *chi.Mux
		slogger *slog.Logger
	)

	BeforeEach(func() {
		var err error
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&categoryDatamodel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
		service = category.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = category.NewHandler(baseHandler, service)

		passthrough := func(next http.Handler) http.Handler { return next }
		router = chi.NewRouter()
		router.Route("/api/categories", handler.Routes(passthrough))

		for _, cat := range []*category.Category{
			category.NewCategory("semen", "Semen dan mortar"),
			category.NewCategory("cat", "Cat tembok"),
		} {
			Expect(repo.Create(category.ToDataModel(cat))).To(Succeed())
		}

		inactive := category.NewCategory("asbes", "Tidak dijual lagi")
		inactive.Deactivate()
		Expect(repo.Create(category.ToDataModel(inactive))).To(Succeed())
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should list active categories for dropdowns", func() {
		w := serve(http.MethodGet, "/api/categories/active", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response category.CategoriesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

		names := make([]string, len(response.Categories))
		for i, cat := range response.Categories {
			names[i] = cat.Name
		}
		Expect(names).To(ConsistOf("semen", "cat"))
	})

	It("should page through every category", func() {
		w := serve(http.MethodGet, "/api/categories?page=2&limit=2", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var page struct {
			Data       []category.Category `json:"data"`
			Pagination struct {
				CurrentPage int `json:"currentPage"`
				TotalPages  int `json:"totalPages"`
				TotalItems  int `json:"totalItems"`
			} `json:"pagination"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&page)).To(Succeed())
		Expect(page.Data).To(HaveLen(1))
		Expect(page.Data[0].Name).To(Equal("semen"))
		Expect(page.Pagination.TotalItems).To(Equal(3))
		Expect(page.Pagination.TotalPages).To(Equal(2))
	})

	It("should return the server message verbatim on duplicate create", func() {
		w := serve(http.MethodPost, "/api/categories", `{"name":"Semen"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		Expect(body["message"]).To(Equal("Nama kategori sudah digunakan"))
	})

	It("should return 404 for an unknown id", func() {
		w := serve(http.MethodGet, "/api/categories/999", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
