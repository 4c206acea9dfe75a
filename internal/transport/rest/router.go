package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/blog"
	"github.com/frahmantamala/distribution-admin/internal/category"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	"github.com/frahmantamala/distribution-admin/internal/order"
	"github.com/frahmantamala/distribution-admin/internal/palet"
	"github.com/frahmantamala/distribution-admin/internal/product"
	"github.com/frahmantamala/distribution-admin/internal/quotation"
	"github.com/frahmantamala/distribution-admin/internal/report"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/store"
	"github.com/frahmantamala/distribution-admin/internal/transport/middleware"
	"github.com/frahmantamala/distribution-admin/internal/transport/swagger"
	"github.com/frahmantamala/distribution-admin/internal/user"
	"github.com/frahmantamala/distribution-admin/internal/visit"
	"github.com/frahmantamala/distribution-admin/internal/webproduct"
	"github.com/go-chi/chi"
)

// Handlers groups everything the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health       *HealthHandler
	Auth         *auth.Handler
	User         *user.Handler
	Category     *category.Handler
	Product      *resource.Handler[product.Product]
	WebProduct   *resource.Handler[webproduct.WebProduct]
	Blog         *resource.Handler[blog.Blog]
	Store        *resource.Handler[store.Store]
	Visit        *resource.Handler[visit.Visit]
	ProjectVisit *resource.Handler[visit.ProjectVisit]
	Palet        *resource.Handler[palet.Palet]
	Stock        *resource.Handler[palet.Stock]
	Warehouse    *palet.Handler
	Quotation    *resource.Handler[quotation.Quotation]
	Approval     *quotation.Handler
	Order        *order.Handler
	Navigation   *navigation.Handler
	Report       *report.Handler
}

var (
	catalogueWriters = []role.Role{role.Admin}
	warehouseWriters = []role.Role{role.Admin, role.Gudang}
	userWriters      = []role.Role{role.Admin, role.HRD}
	reportReaders    = []role.Role{role.Admin, role.ManagerRetail, role.ManagerProject}
)

func RegisterAllRoutes(router *chi.Mux, h Handlers, rbac *auth.RBACAuthorization, origins []string, logger *slog.Logger) {
	router.Use(middleware.CORS(origins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get(swagger.SpecPath, swagger.SpecHandler)
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.healthCheckHandler)
			r.Get("/ping", h.Health.pingHandler)
		}

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Route("/users", h.User.Routes(rbac.RequireWriteAccess(userWriters...)))
			}
			if h.Category != nil {
				pr.Route("/categories", h.Category.Routes(rbac.RequireWriteAccess(catalogueWriters...)))
			}

			mountResource(pr, "/products", h.Product, rbac.RequireWriteAccess(catalogueWriters...))
			mountResource(pr, "/web-products", h.WebProduct, rbac.RequireWriteAccess(catalogueWriters...))
			mountResource(pr, "/blogs", h.Blog, rbac.RequireWriteAccess(catalogueWriters...))
			mountResource(pr, "/stores", h.Store, nil)
			mountResource(pr, "/visits", h.Visit, nil)
			mountResource(pr, "/project-visits", h.ProjectVisit, nil)
			mountResource(pr, "/stocks", h.Stock, rbac.RequireWriteAccess(warehouseWriters...))

			if h.Palet != nil {
				pr.Route("/palets", func(sr chi.Router) {
					if h.Warehouse != nil {
						sr.Get("/scan/{code}", h.Warehouse.Scan)
						sr.Get("/{id}/stocks", h.Warehouse.Stocks)
						sr.Get("/{id}/qrcode", h.Warehouse.QRCode)
					}
					sr.Group(func(gr chi.Router) {
						gr.Use(rbac.RequireWriteAccess(warehouseWriters...))
						h.Palet.Routes(gr)
					})
				})
			}

			if h.Quotation != nil {
				pr.Route("/quotations", func(sr chi.Router) {
					if h.Approval != nil {
						sr.With(rbac.RequireRoles(quotation.ApproverRoles...)).Post("/{id}/approve", h.Approval.Approve)
					}
					h.Quotation.Routes(sr)
				})
			}

			if h.Order != nil {
				pr.Route("/orders", h.Order.Routes)
			}

			if h.Navigation != nil {
				pr.Get("/navigation", h.Navigation.Menu)
				pr.Get("/route-permissions", h.Navigation.ListRoutePermissions)
				pr.With(rbac.RequireSuperadmin()).Put("/route-permissions", h.Navigation.SetRoutePermission)
			}

			if h.Report != nil {
				pr.Group(func(gr chi.Router) {
					gr.Use(rbac.RequireRoles(reportReaders...))
					gr.Route("/reports", h.Report.Routes)
				})
			}
		})
	})
}

func mountResource[T any](r chi.Router, path string, h *resource.Handler[T], gate func(http.Handler) http.Handler) {
	if h == nil {
		return
	}
	r.Route(path, func(sr chi.Router) {
		if gate != nil {
			sr.Use(gate)
		}
		h.Routes(sr)
	})
}
