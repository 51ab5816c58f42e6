package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/conference-management/internal"
)

// PermissionAuthorizer answers whether any of a user's roles grants the named
// permission. Evaluated against storage on every call; no caching.
type PermissionAuthorizer interface {
	HasPermission(ctx context.Context, userID string, permission string) (bool, error)
}

type RBACAuthorization struct {
	authorizer PermissionAuthorizer
	logger     *slog.Logger
}

func NewRBACAuthorization(authorizer PermissionAuthorizer, logger *slog.Logger) *RBACAuthorization {
	return &RBACAuthorization{
		authorizer: authorizer,
		logger:     logger,
	}
}

// RequirePermission gates a route on a permission codename. The auth
// middleware must have run first so the user is in context.
func (ra *RBACAuthorization) RequirePermission(permission string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.logger.Warn("authorization check failed: user not found in context")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx, cancel := internal.WithTimeout(r.Context(), 0)
			defer cancel()

			hasAccess, err := ra.authorizer.HasPermission(ctx, user.ID, permission)
			if err != nil {
				ra.logger.ErrorContext(r.Context(), "authorization check failed", "error", err, "user_id", user.ID, "permission", permission)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if !hasAccess {
				ra.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permission", permission)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
