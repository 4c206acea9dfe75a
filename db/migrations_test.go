package db_test

import (
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"github.com/frahmantamala/distribution-admin/db"
	"github.com/frahmantamala/distribution-admin/internal/blog"
	categoryDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/category"
	navigationDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/navigation"
	orderDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/order"
	userDatamodel "github.com/frahmantamala/distribution-admin/internal/core/datamodel/user"
	"github.com/frahmantamala/distribution-admin/internal/palet"
	"github.com/frahmantamala/distribution-admin/internal/product"
	"github.com/frahmantamala/distribution-admin/internal/quotation"
	"github.com/frahmantamala/distribution-admin/internal/store"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	"github.com/frahmantamala/distribution-admin/internal/webproduct"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm/schema"
)

type tabler interface {
	TableName() string
}

var createTable = regexp.MustCompile(`CREATE TABLE IF NOT EXISTS (\w+) \(([^;]*)\);`)

func schemaColumns() map[string]string {
	tables := map[string]string{}
	err := fs.WalkDir(db.Migrations, db.MigrationsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		raw, err := fs.ReadFile(db.Migrations, path)
		if err != nil {
			return err
		}
		for _, m := range createTable.FindAllStringSubmatch(string(raw), -1) {
			tables[m[1]] = m[2]
		}
		return nil
	})
	Expect(err).NotTo(HaveOccurred())
	return tables
}

var _ = Describe("Migrations", func() {
	It("are numbered goose files with up and down sections", func() {
		goose.SetBaseFS(db.Migrations)
		defer goose.SetBaseFS(nil)

		migrations, err := goose.CollectMigrations(db.MigrationsDir, 0, goose.MaxVersion)
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations).To(HaveLen(7))

		for _, m := range migrations {
			raw, err := fs.ReadFile(db.Migrations, m.Source)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring("-- +goose Up"))
			Expect(string(raw)).To(ContainSubstring("-- +goose Down"))
		}
	})

	DescribeTable("create every column the models map",
		func(model tabler) {
			tables := schemaColumns()
			body, ok := tables[model.TableName()]
			Expect(ok).To(BeTrue(), "missing table "+model.TableName())

			s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
			Expect(err).NotTo(HaveOccurred())
			for _, f := range s.Fields {
				if f.DBName == "" {
					continue
				}
				Expect(body).To(MatchRegexp(`(?m)^\s*`+regexp.QuoteMeta(f.DBName)+`\s`),
					model.TableName()+"."+f.DBName)
			}
		},
		Entry("users", &userDatamodel.User{}),
		Entry("categories", &categoryDatamodel.Category{}),
		Entry("products", &product.Product{}),
		Entry("web_products", &webproduct.WebProduct{}),
		Entry("blogs", &blog.Blog{}),
		Entry("stores", &store.Store{}),
		Entry("visits", &visit.Visit{}),
		Entry("project_visits", &visit.ProjectVisit{}),
		Entry("palets", &palet.Palet{}),
		Entry("stocks", &palet.Stock{}),
		Entry("quotations", &quotation.Quotation{}),
		Entry("orders", &orderDatamodel.Order{}),
		Entry("order_items", &orderDatamodel.Item{}),
		Entry("order_status_history", &orderDatamodel.StatusHistory{}),
		Entry("route_permissions", &navigationDatamodel.RoutePermission{}),
	)

	It("keeps table names lowercase", func() {
		for name := range schemaColumns() {
			Expect(name).To(Equal(strings.ToLower(name)))
		}
	})
})
