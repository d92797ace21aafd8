package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/phrazzld/taskhub-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	templateHandler := api.NewTemplateHandler(app.templateService, app.taskService, app.logger)
	activityHandler := api.NewActivityHandler(app.activityStore)
	userHandler := api.NewUserHandler(app.userService)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Post("/auth/logout", authHandler.Logout)

			// Task endpoints. Fixed paths go before the {id} routes so
			// chi does not swallow them as IDs.
			r.Get("/tasks", taskHandler.List)
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks/statistics", taskHandler.Statistics)
			r.Post("/tasks/bulk-update", taskHandler.BulkUpdate)
			r.Post("/tasks/bulk-delete", taskHandler.BulkDelete)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			// Template endpoints
			r.Get("/templates", templateHandler.List)
			r.Post("/templates", templateHandler.Create)
			r.Get("/templates/{id}", templateHandler.Get)
			r.Put("/templates/{id}", templateHandler.Update)
			r.Delete("/templates/{id}", templateHandler.Delete)
			r.Post("/templates/{id}/create-task", templateHandler.CreateTask)

			// Activity feed
			r.Get("/activity", activityHandler.List)

			// Profile and account settings
			r.Get("/profile/me", userHandler.Profile)
			r.Put("/user/profile", userHandler.UpdateProfile)
			r.Put("/user/password", userHandler.ChangePassword)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			shared.RespondWithError(w, r, http.StatusNotFound, "API route not found")
		})
	})

	return r
}
