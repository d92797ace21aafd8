package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskhub-api/internal/config"
	"github.com/phrazzld/taskhub-api/internal/platform/postgres"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// application holds the shared dependencies of the server: configuration,
// logging, the database handle, stores and services. It is assembled once
// at startup and read-only afterwards.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	taskStore     store.TaskStore
	templateStore store.TemplateStore
	activityStore store.ActivityStore

	jwtService      auth.JWTService
	userService     service.UserService
	taskService     service.TaskService
	templateService service.TemplateService
}

// newApplication connects to the database, applies pending migrations and
// wires up every store and service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, logger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	templateStore := postgres.NewPostgresTemplateStore(db, logger)
	activityStore := postgres.NewPostgresActivityStore(db, logger)

	hasher := auth.NewBcryptHasher()

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,

		userStore:     userStore,
		taskStore:     taskStore,
		templateStore: templateStore,
		activityStore: activityStore,

		jwtService:      jwtService,
		userService:     service.NewUserService(userStore, taskStore, hasher, logger),
		taskService:     service.NewTaskService(taskStore, templateStore, activityStore, logger),
		templateService: service.NewTemplateService(templateStore, logger),
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
