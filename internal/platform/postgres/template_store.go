package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

const templateColumns = "id, user_id, name, title, description, category, priority, created_at, updated_at"

// PostgresTemplateStore implements the store.TemplateStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTemplateStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTemplateStore creates a new PostgreSQL implementation of the
// TemplateStore interface. If logger is nil, the default logger is used.
func NewPostgresTemplateStore(db store.DBTX, logger *slog.Logger) *PostgresTemplateStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTemplateStore{
		db:     db,
		logger: logger.With(slog.String("component", "template_store")),
	}
}

// Ensure PostgresTemplateStore implements store.TemplateStore interface
var _ store.TemplateStore = (*PostgresTemplateStore)(nil)

// Create implements store.TemplateStore.Create
func (s *PostgresTemplateStore) Create(ctx context.Context, tmpl *domain.TaskTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tmpl.Validate(); err != nil {
		log.Warn("template validation failed during create",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	query := `
		INSERT INTO task_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		tmpl.ID,
		tmpl.UserID,
		tmpl.Name,
		tmpl.Title,
		tmpl.Description,
		tmpl.Category,
		tmpl.Priority,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create template",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	log.Info("template created successfully",
		slog.String("template_id", tmpl.ID.String()),
		slog.String("user_id", tmpl.UserID.String()))
	return nil
}

// GetByID implements store.TemplateStore.GetByID
// Returns store.ErrTemplateNotFound if no template with that id is owned
// by ownerID.
func (s *PostgresTemplateStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.TaskTemplate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + templateColumns + ` FROM task_templates WHERE id = $1 AND user_id = $2`

	tmpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTemplateNotFound
		}
		log.Error("failed to get template by ID",
			slog.String("error", err.Error()),
			slog.String("template_id", id.String()))
		return nil, err
	}

	return tmpl, nil
}

// List implements store.TemplateStore.List
func (s *PostgresTemplateStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + templateColumns + ` FROM task_templates WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to list templates",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var templates []*domain.TaskTemplate
	for rows.Next() {
		tmpl, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, rows.Err()
}

// Update implements store.TemplateStore.Update
// Returns store.ErrTemplateNotFound if no template with that id is owned.
func (s *PostgresTemplateStore) Update(ctx context.Context, tmpl *domain.TaskTemplate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tmpl.Validate(); err != nil {
		log.Warn("template validation failed during update",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	query := `
		UPDATE task_templates
		SET name = $1, title = $2, description = $3, category = $4, priority = $5, updated_at = $6
		WHERE id = $7 AND user_id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		tmpl.Name,
		tmpl.Title,
		tmpl.Description,
		tmpl.Category,
		tmpl.Priority,
		tmpl.UpdatedAt,
		tmpl.ID,
		tmpl.UserID,
	)
	if err != nil {
		log.Error("failed to update template",
			slog.String("error", err.Error()),
			slog.String("template_id", tmpl.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTemplateNotFound
	}

	return nil
}

// Delete implements store.TemplateStore.Delete
// Tasks created from the template keep their dangling reference.
// Returns store.ErrTemplateNotFound if no template with that id is owned.
func (s *PostgresTemplateStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM task_templates WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete template",
			slog.String("error", err.Error()),
			slog.String("template_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTemplateNotFound
	}

	log.Info("template deleted successfully",
		slog.String("template_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// scanTemplate reads one template row in templateColumns order.
func scanTemplate(row rowScanner) (*domain.TaskTemplate, error) {
	var tmpl domain.TaskTemplate
	err := row.Scan(
		&tmpl.ID,
		&tmpl.UserID,
		&tmpl.Name,
		&tmpl.Title,
		&tmpl.Description,
		&tmpl.Category,
		&tmpl.Priority,
		&tmpl.CreatedAt,
		&tmpl.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}
