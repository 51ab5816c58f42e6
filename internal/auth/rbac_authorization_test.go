package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type mockAuthorizer struct {
	granted map[string]bool
	err     error
}

func (m *mockAuthorizer) HasPermission(_ context.Context, userID, permission string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.granted[userID+":"+permission], nil
}

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		authorizer *mockAuthorizer
		rbac       *RBACAuthorization
		next       http.Handler
		nextCalled bool
	)

	ginkgo.BeforeEach(func() {
		authorizer = &mockAuthorizer{granted: map[string]bool{}}
		rbac = NewRBACAuthorization(authorizer, slog.Default())
		nextCalled = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		})
	})

	requestAs := func(user *User) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		if user != nil {
			req = req.WithContext(ContextWithUser(req.Context(), user))
		}
		return req
	}

	ginkgo.It("should pass through when the permission is granted", func() {
		authorizer.granted["u1:manage_users"] = true
		rec := httptest.NewRecorder()

		rbac.RequirePermission("manage_users")(next).ServeHTTP(rec, requestAs(&User{ID: "u1"}))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		gomega.Expect(nextCalled).To(gomega.BeTrue())
	})

	ginkgo.It("should return 403 when the permission is missing", func() {
		rec := httptest.NewRecorder()

		rbac.RequirePermission("manage_users")(next).ServeHTTP(rec, requestAs(&User{ID: "u1"}))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(nextCalled).To(gomega.BeFalse())
	})

	ginkgo.It("should return 401 when no user is in context", func() {
		rec := httptest.NewRecorder()

		rbac.RequirePermission("manage_users")(next).ServeHTTP(rec, requestAs(nil))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		gomega.Expect(nextCalled).To(gomega.BeFalse())
	})

	ginkgo.It("should return 500 when the permission check fails", func() {
		authorizer.err = errors.New("db down")
		rec := httptest.NewRecorder()

		rbac.RequirePermission("manage_users")(next).ServeHTTP(rec, requestAs(&User{ID: "u1"}))

		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusInternalServerError))
		gomega.Expect(nextCalled).To(gomega.BeFalse())
	})
})
