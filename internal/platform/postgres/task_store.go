package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

const taskColumns = "id, user_id, title, description, notes, category, status, priority, due_date, template_id, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, the default logger is used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Notes,
		task.Category,
		task.Status,
		task.Priority,
		task.DueDate,
		task.TemplateID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("user_id", task.UserID.String()))
		return err
	}

	log.Info("task created successfully",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", task.UserID.String()))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if no task with that id is owned by ownerID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND user_id = $2`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found",
				slog.String("task_id", id.String()),
				slog.String("user_id", ownerID.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, err
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// The owning user is part of the WHERE clause, never of the SET list, so
// ownership can never be reassigned.
// Returns store.ErrTaskNotFound if no task with that id is owned.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, notes = $3, category = $4, status = $5, priority = $6, due_date = $7, updated_at = $8
		WHERE id = $9 AND user_id = $10
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Notes,
		task.Category,
		task.Status,
		task.Priority,
		task.DueDate,
		task.UpdatedAt,
		task.ID,
		task.UserID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
// Returns store.ErrTaskNotFound if no task with that id is owned by ownerID.
func (s *PostgresTaskStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`

	result, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted successfully",
		slog.String("task_id", id.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	where, args, orderBy := query.Build(time.Now())
	stmt := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + where + ` ORDER BY ` + orderBy

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", query.OwnerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// ListByIDs implements store.TaskStore.ListByIDs
func (s *PostgresTaskStore) ListByIDs(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) ([]*domain.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	stmt := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 AND id IN (` +
		placeholders(2, len(ids)) + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list tasks by IDs",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return collectTasks(rows)
}

// UpdateMany implements store.TaskStore.UpdateMany
// Unmatched and foreign ids are silently skipped; the returned count only
// covers rows actually modified.
func (s *PostgresTaskStore) UpdateMany(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
	updates store.TaskUpdates,
) (int64, error) {
	if len(ids) == 0 || updates.IsEmpty() {
		return 0, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		setParts []string
		args     []any
	)
	if updates.Status != nil {
		args = append(args, *updates.Status)
		setParts = append(setParts, "status = $"+strconv.Itoa(len(args)))
	}
	if updates.Priority != nil {
		args = append(args, *updates.Priority)
		setParts = append(setParts, "priority = $"+strconv.Itoa(len(args)))
	}
	if updates.Category != nil {
		args = append(args, *updates.Category)
		setParts = append(setParts, "category = $"+strconv.Itoa(len(args)))
	}
	args = append(args, time.Now().UTC())
	setParts = append(setParts, "updated_at = $"+strconv.Itoa(len(args)))

	args = append(args, ownerID)
	ownerParam := "$" + strconv.Itoa(len(args))

	idList := placeholders(len(args)+1, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}

	stmt := `UPDATE tasks SET ` + strings.Join(setParts, ", ") +
		` WHERE user_id = ` + ownerParam + ` AND id IN (` + idList + `)`

	result, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to bulk update tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()),
			slog.Int("requested", len(ids)))
		return 0, err
	}

	modified, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("tasks bulk updated",
		slog.String("user_id", ownerID.String()),
		slog.Int("requested", len(ids)),
		slog.Int64("modified", modified))
	return modified, nil
}

// DeleteMany implements store.TaskStore.DeleteMany
func (s *PostgresTaskStore) DeleteMany(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	log := logger.FromContextOrDefault(ctx, s.logger)

	stmt := `DELETE FROM tasks WHERE user_id = $1 AND id IN (` + placeholders(2, len(ids)) + `)`

	args := make([]any, 0, len(ids)+1)
	args = append(args, ownerID)
	for _, id := range ids {
		args = append(args, id)
	}

	result, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to bulk delete tasks",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()),
			slog.Int("requested", len(ids)))
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	log.Info("tasks bulk deleted",
		slog.String("user_id", ownerID.String()),
		slog.Int("requested", len(ids)),
		slog.Int64("deleted", deleted))
	return deleted, nil
}

// StatusCounts implements store.TaskStore.StatusCounts
func (s *PostgresTaskStore) StatusCounts(
	ctx context.Context,
	ownerID uuid.UUID,
) (map[domain.TaskStatus]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT status, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY status`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to count tasks by status",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := map[domain.TaskStatus]int{}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[domain.TaskStatus(status)] = count
	}

	return counts, rows.Err()
}

// Statistics implements store.TaskStore.Statistics
// Overdue means due before now with status other than done; this-week
// covers the Sunday-started calendar week containing now.
func (s *PostgresTaskStore) Statistics(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) (*store.TaskStatistics, error) {
	stats := &store.TaskStatistics{
		ByStatus:   map[domain.TaskStatus]int{},
		ByPriority: map[domain.TaskPriority]int{},
		ByCategory: map[domain.TaskCategory]int{},
	}

	byStatus, err := s.groupCounts(ctx, ownerID, "status")
	if err != nil {
		return nil, err
	}
	for value, count := range byStatus {
		stats.ByStatus[domain.TaskStatus(value)] = count
		stats.Total += count
	}

	byPriority, err := s.groupCounts(ctx, ownerID, "priority")
	if err != nil {
		return nil, err
	}
	for value, count := range byPriority {
		stats.ByPriority[domain.TaskPriority(value)] = count
	}

	byCategory, err := s.groupCounts(ctx, ownerID, "category")
	if err != nil {
		return nil, err
	}
	for value, count := range byCategory {
		stats.ByCategory[domain.TaskCategory(value)] = count
	}

	overdueQuery := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND due_date < $2 AND status <> $3`
	err = s.db.QueryRowContext(ctx, overdueQuery, ownerID, now, domain.TaskStatusDone).
		Scan(&stats.Overdue)
	if err != nil {
		return nil, err
	}

	weekStart, weekEnd := store.WeekBounds(now)
	weekQuery := `SELECT COUNT(*) FROM tasks WHERE user_id = $1 AND due_date >= $2 AND due_date < $3`
	err = s.db.QueryRowContext(ctx, weekQuery, ownerID, weekStart, weekEnd).
		Scan(&stats.ThisWeek)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// groupCounts runs a single-column GROUP BY count for the owner. The
// column name comes from a fixed caller-side set, never from input.
func (s *PostgresTaskStore) groupCounts(
	ctx context.Context,
	ownerID uuid.UUID,
	column string,
) (map[string]int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + column + `, COUNT(*) FROM tasks WHERE user_id = $1 GROUP BY ` + column

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		log.Error("failed to group tasks",
			slog.String("error", err.Error()),
			slog.String("column", column),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := map[string]int{}
	for rows.Next() {
		var (
			value string
			count int
		)
		if err := rows.Scan(&value, &count); err != nil {
			return nil, err
		}
		counts[value] = count
	}

	return counts, rows.Err()
}

// scanTask reads one task row in taskColumns order.
func scanTask(row rowScanner) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Notes,
		&task.Category,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.TemplateID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// collectTasks drains rows into a task slice.
func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
