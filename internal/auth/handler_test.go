package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type mockAuthService struct {
	claims       *Claims
	validateErr  error
	user         *User
	userErr      error
	loginResp    LoginResponse
	loginErr     error
	seenLoginDTO LoginDTO
}

func (m *mockAuthService) Authenticate(dto LoginDTO) (LoginResponse, error) {
	m.seenLoginDTO = dto
	return m.loginResp, m.loginErr
}

func (m *mockAuthService) ValidateAccessToken(_ string) (*Claims, error) {
	return m.claims, m.validateErr
}

func (m *mockAuthService) GetUserByID(_ string) (*User, error) {
	return m.user, m.userErr
}

func (m *mockAuthService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		svc     *mockAuthService
		handler *Handler
	)

	ginkgo.BeforeEach(func() {
		svc = &mockAuthService{
			claims: &Claims{UserID: "u1"},
			user:   &User{ID: "u1", Email: "alice@example.com", IsActive: true},
		}
		handler = NewHandler(svc)
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return the access token on success", func() {
			svc.loginResp = LoginResponse{AccessToken: "token-123"}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"alice@example.com","password":"pw"}`))

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("token-123"))
		})

		ginkgo.It("should return 401 on invalid credentials", func() {
			svc.loginErr = ErrInvalidCredentials
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`))

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 400 on a malformed body", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("{"))

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should return 400 on a validation error", func() {
			svc.loginErr = ValidationError{Msg: "email is required"}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login",
				strings.NewReader(`{"password":"pw"}`))

			handler.Login(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			nextCalled bool
			seenUser   *User
			protected  http.Handler
		)

		ginkgo.BeforeEach(func() {
			nextCalled = false
			seenUser = nil
			protected = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				seenUser, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))
		})

		ginkgo.It("should resolve the user from a bearer token", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)
			req.Header.Set("Authorization", "Bearer some-token")

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())
			gomega.Expect(seenUser).NotTo(gomega.BeNil())
			gomega.Expect(seenUser.ID).To(gomega.Equal("u1"))
		})

		ginkgo.It("should accept the form token fallback on POST", func() {
			form := url.Values{"authorization_token": {"some-token"}}
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/session/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(nextCalled).To(gomega.BeTrue())
		})

		ginkgo.It("should return 401 when the token is missing", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("authorization token missing"))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})

		ginkgo.It("should return 401 when the header is not a bearer token", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)
			req.Header.Set("Authorization", "Basic abc")

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("bearer token required"))
		})

		ginkgo.It("should return 401 when the token is expired", func() {
			svc.validateErr = ErrTokenExpired
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)
			req.Header.Set("Authorization", "Bearer stale")

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("token expired"))
		})

		ginkgo.It("should return 404 when the token's user no longer exists", func() {
			svc.user = nil
			svc.userErr = ErrUserNotFound
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/session/", nil)
			req.Header.Set("Authorization", "Bearer some-token")

			protected.ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("user does not exist"))
			gomega.Expect(nextCalled).To(gomega.BeFalse())
		})
	})
})
