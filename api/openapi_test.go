package api_test

import (
	"context"

	"github.com/frahmantamala/distribution-admin/api"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	It("loads and validates", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("Distribution Admin API"))
	})

	DescribeTable("documents the main routes",
		func(path, method string) {
			doc, err := api.Load(context.Background())
			Expect(err).NotTo(HaveOccurred())

			item := doc.Paths.Find(path)
			Expect(item).NotTo(BeNil(), path)
			Expect(item.GetOperation(method)).NotTo(BeNil(), method+" "+path)
		},
		Entry("login", "/auth/login", "POST"),
		Entry("order list", "/orders", "GET"),
		Entry("order status", "/orders/{id}/status", "PUT"),
		Entry("navigation", "/navigation", "GET"),
		Entry("route permissions", "/route-permissions", "PUT"),
		Entry("project visit export", "/reports/project-visits/export", "GET"),
		Entry("quotation approve", "/quotations/{id}/approve", "POST"),
		Entry("palet scan", "/palets/scan/{code}", "GET"),
	)
})
