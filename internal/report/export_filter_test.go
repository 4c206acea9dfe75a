package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/report"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	visitPostgres "github.com/frahmantamala/distribution-admin/internal/visit/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Project visit export date range", func() {
	var router *chi.Mux

	BeforeEach(func() {
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&visit.ProjectVisit{})).To(Succeed())

		projects := visit.NewProjectVisitService(visitPostgres.NewProjectVisitRepository(db), nil)
		for _, at := range []time.Time{
			time.Date(2025, 1, 1, 16, 59, 0, 0, time.UTC), // 23:59 on 1 January in WIB
			time.Date(2025, 1, 1, 20, 0, 0, 0, time.UTC),  // 03:00 on 2 January in WIB
			time.Date(2025, 1, 2, 17, 0, 0, 0, time.UTC),  // 00:00 on 3 January in WIB
		} {
			_, err := projects.Create(context.Background(), nil, &visit.ProjectVisit{
				Username: "sari", ProjectName: "Ruko Darmo", VisitedAt: at, Progress: 40,
			})
			Expect(err).NotTo(HaveOccurred())
		}

		wib := time.FixedZone("WIB", 7*60*60)
		svc := report.NewService(projects, nil, wib, nil)
		router = chi.NewRouter()
		router.Route("/api/reports", report.NewHandler(transport.NewBaseHandler(nil), svc).Routes)
	})

	It("should export the visits whose local date falls in the range", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/project-visits/export?startDate=2025-01-02&endDate=2025-01-02", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		Expect(rec.Code).To(Equal(http.StatusOK))
		rows := readRows(rec.Body.Bytes())
		Expect(rows).To(HaveLen(1 + 1))
		Expect(rows[1]).To(ContainElement("02/01/2025 03:00"))
	})
})
