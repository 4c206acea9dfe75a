package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/distribution-admin/internal/core/role"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

var _ = ginkgo.Describe("Auth Handler", func() {
	var (
		handler  *Handler
		tokenGen *JWTTokenGenerator
		rbac     *RBACAuthorization
	)

	ginkgo.BeforeEach(func() {
		tokenGen = NewJWTTokenGenerator("handler-access-secret-0123456789abcd", "handler-refresh-secret-0123456789abc", 0, 0)
		handler = NewHandler(NewService(newMockUserRepository(), tokenGen, nil))
		rbac = NewRBACAuthorization(nil)
	})

	login := func(username, password string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(LoginDTO{Username: username, Password: password})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return the token and user on success", func() {
			rec := login("sales", "correct_password")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var resp map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp["token"]).ToNot(gomega.BeEmpty())
			gomega.Expect(resp["refreshToken"]).ToNot(gomega.BeEmpty())
			gomega.Expect(resp["user"]).To(gomega.HaveKeyWithValue("role", float64(role.SalesRetail)))
		})

		ginkgo.It("should return 401 with a readable message on bad password", func() {
			rec := login("sales", "nope")
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))

			var resp map[string]interface{}
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(gomega.Succeed())
			gomega.Expect(resp["message"]).To(gomega.Equal("Username atau password salah"))
		})

		ginkgo.It("should return 400 on malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{"))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var reached *User

		protected := func() http.Handler {
			return handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
		}

		ginkgo.BeforeEach(func() {
			reached = nil
		})

		ginkgo.It("should reject requests without a bearer token", func() {
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(reached).To(gomega.BeNil())
		})

		ginkgo.It("should place the active user in the context", func() {
			var resp LoginResponse
			gomega.Expect(json.Unmarshal(login("gudang", "correct_password").Body.Bytes(), &resp)).To(gomega.Succeed())

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			req.Header.Set("Authorization", "Bearer "+resp.Token)
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(reached).ToNot(gomega.BeNil())
			gomega.Expect(reached.Role).To(gomega.Equal(role.Gudang))
		})

		ginkgo.It("should reject a refresh token presented as access token", func() {
			var resp LoginResponse
			gomega.Expect(json.Unmarshal(login("gudang", "correct_password").Body.Bytes(), &resp)).To(gomega.Succeed())

			req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
			req.Header.Set("Authorization", "Bearer "+resp.RefreshToken)
			rec := httptest.NewRecorder()
			protected().ServeHTTP(rec, req)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})

	ginkgo.Describe("RBACAuthorization", func() {
		serve := func(u *User, method string, mw func(http.Handler) http.Handler) int {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			req := httptest.NewRequest(method, "/api/palets", nil)
			if u != nil {
				req = req.WithContext(ContextWithUser(context.Background(), u))
			}
			rec := httptest.NewRecorder()
			mw(next).ServeHTTP(rec, req)
			return rec.Code
		}

		ginkgo.It("should allow listed roles and Superadmin", func() {
			mw := rbac.RequireRoles(role.Admin, role.Gudang)
			gomega.Expect(serve(&User{Role: role.Gudang}, http.MethodPost, mw)).To(gomega.Equal(http.StatusOK))
			gomega.Expect(serve(&User{Role: role.Superadmin}, http.MethodPost, mw)).To(gomega.Equal(http.StatusOK))
			gomega.Expect(serve(&User{Role: role.SalesRetail}, http.MethodPost, mw)).To(gomega.Equal(http.StatusForbidden))
		})

		ginkgo.It("should return 401 when no user is in context", func() {
			gomega.Expect(serve(nil, http.MethodGet, rbac.RequireSuperadmin())).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should leave reads open under RequireWriteAccess", func() {
			mw := rbac.RequireWriteAccess(role.Admin)
			gomega.Expect(serve(&User{Role: role.Kolektor}, http.MethodGet, mw)).To(gomega.Equal(http.StatusOK))
			gomega.Expect(serve(&User{Role: role.Kolektor}, http.MethodDelete, mw)).To(gomega.Equal(http.StatusForbidden))
		})
	})
})
