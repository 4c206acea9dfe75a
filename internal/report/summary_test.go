package report_test

import (
	"context"
	"time"

	"github.com/frahmantamala/distribution-admin/internal/report"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Visit summary", func() {
	var (
		ctx  context.Context
		svc  *report.Service
		repo *report.SummaryRepository
	)

	at := func(day int) time.Time { return time.Date(2024, 6, day, 10, 0, 0, 0, time.UTC) }

	BeforeEach(func() {
		ctx = context.Background()
		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(db.AutoMigrate(&visit.Visit{})).To(Succeed())

		for _, v := range []visit.Visit{
			{Username: "andi", StoreName: "Toko A", VisitedAt: at(1)},
			{Username: "andi", StoreName: "Toko A", VisitedAt: at(2)},
			{Username: "andi", StoreName: "Toko B", VisitedAt: at(3)},
			{Username: "budi", StoreName: "Toko C", VisitedAt: at(3)},
			{Username: "budi", StoreName: "Toko C", VisitedAt: at(9)},
		} {
			Expect(db.Create(&v).Error).To(Succeed())
		}

		repo = report.NewSummaryRepository(sqlx.NewDb(sqlDB, "sqlite3"))
		svc = report.NewService(nil, repo, time.UTC, nil)
	})

	It("should count visits and distinct stores per user", func() {
		rows, err := svc.VisitSummary(ctx, resource.Filter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.VisitSummary{
			{Username: "andi", TotalVisits: 3, Stores: 2},
			{Username: "budi", TotalVisits: 2, Stores: 1},
		}))
	})

	It("should include the whole end day", func() {
		rows, err := svc.VisitSummary(ctx, resource.Filter{
			StartDate: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.VisitSummary{
			{Username: "andi", TotalVisits: 2, Stores: 2},
			{Username: "budi", TotalVisits: 1, Stores: 1},
		}))
	})

	It("should take the date range as days in the report timezone", func() {
		// 10:00 UTC is 23:00 of the previous day at UTC-11
		sst := time.FixedZone("SST", -11*60*60)
		svc = report.NewService(nil, repo, sst, nil)
		day := func(d int) time.Time { return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC) }

		rows, err := svc.VisitSummary(ctx, resource.Filter{StartDate: day(8), EndDate: day(8)})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.VisitSummary{
			{Username: "budi", TotalVisits: 1, Stores: 1},
		}))

		rows, err = svc.VisitSummary(ctx, resource.Filter{StartDate: day(9), EndDate: day(9)})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(BeEmpty())

		rows, err = svc.VisitSummary(ctx, resource.Filter{StartDate: day(1), EndDate: day(2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]report.VisitSummary{
			{Username: "andi", TotalVisits: 2, Stores: 2},
			{Username: "budi", TotalVisits: 1, Stores: 1},
		}))
	})

	It("should return an empty list when nothing matches", func() {
		rows, err := svc.VisitSummary(ctx, resource.Filter{StartDate: at(20)})
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).NotTo(BeNil())
		Expect(rows).To(BeEmpty())
	})
})
