package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/conference-management/internal/auth"
	"github.com/frahmantamala/conference-management/internal/session"
	"github.com/frahmantamala/conference-management/internal/transport/middleware"
	"github.com/frahmantamala/conference-management/internal/transport/swagger"
	"github.com/frahmantamala/conference-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

const PermissionManageUsers = "manage_users"

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, authHandler *auth.Handler, rbac *auth.RBACAuthorization, userHandler *user.Handler, sessionHandler *session.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			// User management routes require the manage_users permission
			pr.Route("/user", func(ur chi.Router) {
				ur.Use(rbac.RequirePermission(PermissionManageUsers))
				ur.Get("/", userHandler.ListUsers)
				ur.Post("/", userHandler.CreateUser)
				ur.Get("/{id}", userHandler.RetrieveUser)
				ur.Put("/{id}", userHandler.UpdateUser)
				ur.Delete("/{id}", userHandler.DeleteUser)
			})

			// Session routes are open to any authenticated user
			pr.Route("/session", func(sr chi.Router) {
				sr.Get("/", sessionHandler.ListSessions)
				sr.Post("/", sessionHandler.CreateSession)
				// Registered before /{id} so "speakers" never matches as an id
				sr.Get("/speakers", sessionHandler.ListSpeakers)
				sr.Get("/{id}", sessionHandler.GetSession)
				sr.Put("/{id}", sessionHandler.UpdateSession)
				sr.Delete("/{id}", sessionHandler.DeleteSession)
			})
		})
	})
}
