package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/distribution-admin/internal"
	"github.com/frahmantamala/distribution-admin/internal/auth"
	"github.com/frahmantamala/distribution-admin/internal/blog"
	blogPostgres "github.com/frahmantamala/distribution-admin/internal/blog/postgres"
	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/frahmantamala/distribution-admin/internal/navigation"
	"github.com/frahmantamala/distribution-admin/internal/report"
	"github.com/frahmantamala/distribution-admin/internal/resource"
	"github.com/frahmantamala/distribution-admin/internal/transport"
	"github.com/frahmantamala/distribution-admin/internal/transport/rest"
	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// tokenAuth accepts the tokens it was given and nothing else.
type tokenAuth struct {
	users map[string]*auth.User
}

func (t *tokenAuth) Authenticate(ctx context.Context, dto auth.LoginDTO) (*auth.LoginResponse, error) {
	return nil, internal.ErrInvalidCredentials
}

func (t *tokenAuth) RefreshTokens(ctx context.Context, refreshToken string) (*auth.LoginResponse, error) {
	return nil, internal.ErrInvalidToken
}

func (t *tokenAuth) ValidateAccessToken(token string) (*auth.Claims, error) {
	u, ok := t.users[token]
	if !ok {
		return nil, internal.ErrInvalidToken
	}
	return &auth.Claims{UserID: u.ID, Username: u.Username, Role: u.Role}, nil
}

func (t *tokenAuth) GetActiveUser(ctx context.Context, userID int64) (*auth.User, error) {
	for _, u := range t.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, internal.ErrUserInactive
}

type noopNavigation struct{}

func (noopNavigation) Menu(ctx context.Context, caller *auth.User) ([]navigation.MenuItem, error) {
	return navigation.Filter(navigation.DefaultMenu(), nil, caller.Role), nil
}

func (noopNavigation) ListRoutePermissions(ctx context.Context) ([]navigation.RoutePermissionView, error) {
	return nil, nil
}

func (noopNavigation) SetRoutePermission(ctx context.Context, caller *auth.User, dto navigation.SetRoutePermissionDTO) error {
	return nil
}

var _ = Describe("Router", func() {
	var (
		router *chi.Mux
		gdb    *gorm.DB
	)

	BeforeEach(func() {
		var err error
		gdb, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := gdb.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		Expect(gdb.AutoMigrate(&blog.Blog{})).To(Succeed())

		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		base := transport.NewBaseHandler(lg)

		users := &tokenAuth{users: map[string]*auth.User{
			"sales-token": {ID: 1, Username: "andi", Name: "Andi", Role: role.SalesRetail},
			"admin-token": {ID: 2, Username: "admin", Name: "Admin", Role: role.Admin},
			"root-token":  {ID: 3, Username: "root", Name: "Root", Role: role.Superadmin},
		}}

		blogs := blog.NewService(blogPostgres.NewBlogRepository(gdb), lg)

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Health:     rest.NewHealthHandler(sqlx.NewDb(sqlDB, "sqlite3"), nil),
			Auth:       auth.NewHandler(users),
			Blog:       resource.NewHandler[blog.Blog](base, blogs, blog.Noun),
			Navigation: navigation.NewHandler(base, noopNavigation{}),
			Report:     report.NewHandler(base, nil),
		}, auth.NewRBACAuthorization(lg), []string{"*"}, lg)
	})

	do := func(method, path, token string, body string) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != "" {
			reader = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, reader)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	It("serves ping and health without a token", func() {
		Expect(do(http.MethodGet, "/api/ping", "", "").Code).To(Equal(http.StatusOK))

		rec := do(http.MethodGet, "/api/health", "", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		var resp rest.HealthResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components).To(HaveKey("postgres"))
	})

	It("serves the OpenAPI document", func() {
		rec := do(http.MethodGet, "/openapi.yml", "", "")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("Distribution Admin API"))
	})

	It("rejects protected routes without a token", func() {
		Expect(do(http.MethodGet, "/api/blogs", "", "").Code).To(Equal(http.StatusUnauthorized))
		Expect(do(http.MethodGet, "/api/navigation", "bogus", "").Code).To(Equal(http.StatusUnauthorized))
	})

	It("lets every role read catalogue content but only Admin write it", func() {
		Expect(do(http.MethodGet, "/api/blogs", "sales-token", "").Code).To(Equal(http.StatusOK))

		payload := `{"title":"Promo Semen","content":"Diskon akhir bulan"}`
		Expect(do(http.MethodPost, "/api/blogs", "sales-token", payload).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodPost, "/api/blogs", "admin-token", payload).Code).To(Equal(http.StatusCreated))

		var count int64
		Expect(gdb.Model(&blog.Blog{}).Count(&count).Error).To(Succeed())
		Expect(count).To(Equal(int64(1)))
	})

	It("lets Superadmin through every write gate", func() {
		payload := `{"title":"Katalog Baru","content":"Isi"}`
		Expect(do(http.MethodPost, "/api/blogs", "root-token", payload).Code).To(Equal(http.StatusCreated))
	})

	It("reserves route permission changes for Superadmin", func() {
		body := `{"path":"/orders","roles":[1]}`
		Expect(do(http.MethodPut, "/api/route-permissions", "admin-token", body).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodPut, "/api/route-permissions", "root-token", body).Code).To(Equal(http.StatusOK))
	})

	It("returns the caller's menu", func() {
		rec := do(http.MethodGet, "/api/navigation", "sales-token", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var resp struct {
			Data []navigation.MenuItem `json:"data"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Data).NotTo(BeEmpty())
		for _, item := range resp.Data {
			Expect(item.Path).NotTo(Equal("/route-permissions"))
		}
	})

	It("keeps reports away from sales roles", func() {
		Expect(do(http.MethodGet, "/api/reports/visits/summary", "sales-token", "").Code).To(Equal(http.StatusForbidden))
	})

	It("tags every response with a request id", func() {
		req := httptest.NewRequest(http.MethodGet, "/api/ping", bytes.NewReader(nil))
		req.Header.Set("X-Request-ID", "req-42")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Header().Get("X-Request-ID")).To(Equal("req-42"))
	})
})
