package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"gradebook_manager/backend/internal/auth"
	"gradebook_manager/backend/internal/gradebook"
	"gradebook_manager/backend/internal/server/handlers"
	"gradebook_manager/backend/internal/server/util"
	"gradebook_manager/backend/internal/shared"
)

// SetupRoutes configures the Chi router, middleware, and route handlers.
func SetupRoutes(store *gradebook.Gradebook, cfg *shared.Config) *chi.Mux {
	r := chi.NewRouter()

	// 1. Global Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS Configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	// 2. Initialize Handlers
	studentHandler := &handlers.StudentHandler{Store: store}
	assignmentHandler := &handlers.AssignmentHandler{Store: store}
	gradeHandler := &handlers.GradeHandler{Store: store}
	reportHandler := &handlers.ReportHandler{Store: store}
	roleHandler := &handlers.RoleHandler{Security: cfg.Security}

	// 3. Define Routes (grouped by prefix)
	r.Route("/api", func(r chi.Router) {
		r.Use(RoleMiddleware(cfg.Security))

		// --- Read Routes (teacher and viewer) ---

		r.Get("/students", studentHandler.List)
		r.Get("/assignments", assignmentHandler.List)
		r.Get("/grades", gradeHandler.List)
		r.Get("/summary", reportHandler.Summary)
		r.Get("/export/{student_id}", reportHandler.ExportCSV)

		// Role switching
		r.Post("/role/{role}", roleHandler.Switch)

		// --- Mutation Routes (teacher only) ---
		r.Group(func(r chi.Router) {
			r.Use(RequireEditor)

			r.Post("/students", studentHandler.Create)
			r.Post("/assignments", assignmentHandler.Create)
			r.Post("/grades", gradeHandler.Create)
		})
	})

	return r
}

// RoleMiddleware resolves the caller's role and injects it into the request
// context. A request without a token runs as teacher, matching the app's
// default role; a token that is present but invalid is rejected.
func RoleMiddleware(security shared.SecurityConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := auth.RoleTeacher

			if tokenStr, err := util.ExtractToken(r); err == nil {
				parsed, err := auth.ParseToken(tokenStr, security.JWTSecret)
				if err != nil {
					util.WriteJSONError(w, http.StatusUnauthorized, "Invalid or expired role token")
					return
				}
				role = parsed
			}

			next.ServeHTTP(w, r.WithContext(util.WithRole(r.Context(), role)))
		})
	}
}

// RequireEditor rejects requests whose role is not allowed to mutate the
// gradebook. Viewers get 403 on every mutation route.
func RequireEditor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := util.RoleFromContext(r.Context())
		if !ok || !auth.CanEdit(role) {
			util.WriteJSONError(w, http.StatusForbidden, "You don't have permission to edit. Switch to teacher role.")
			return
		}
		next.ServeHTTP(w, r)
	})
}
