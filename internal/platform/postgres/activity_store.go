package postgres

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

const activityColumns = "id, user_id, task_id, action, changes, description, created_at"

// PostgresActivityStore implements the store.ActivityStore interface
// using a PostgreSQL database as the storage backend. The table is
// append-only; this type exposes no update or delete.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the
// ActivityStore interface. If logger is nil, the default logger is used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.ActivityStore interface
var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// Append implements store.ActivityStore.Append
func (s *PostgresActivityStore) Append(ctx context.Context, entry *domain.ActivityLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("activity log validation failed",
			slog.String("error", err.Error()),
			slog.String("activity_id", entry.ID.String()))
		return err
	}

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO activity_logs (` + activityColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.UserID,
		entry.TaskID,
		entry.Action,
		changes,
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		log.Error("failed to append activity log",
			slog.String("error", err.Error()),
			slog.String("task_id", entry.TaskID.String()),
			slog.String("action", string(entry.Action)))
		return err
	}

	return nil
}

// List implements store.ActivityStore.List
// Entries come back newest first, capped by the filter's limit.
func (s *PostgresActivityStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.ActivityFilter,
) ([]*domain.ActivityLog, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	limit := filter.Limit
	if limit <= 0 {
		limit = store.DefaultActivityLimit
	}

	args := []any{ownerID}
	where := "user_id = $1"
	if filter.TaskID != nil {
		args = append(args, *filter.TaskID)
		where += " AND task_id = $" + strconv.Itoa(len(args))
	}
	args = append(args, limit)

	query := `SELECT ` + activityColumns + ` FROM activity_logs WHERE ` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list activity logs",
			slog.String("error", err.Error()),
			slog.String("user_id", ownerID.String()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.ActivityLog
	for rows.Next() {
		var (
			entry   domain.ActivityLog
			changes []byte
		)
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.TaskID,
			&entry.Action,
			&changes,
			&entry.Description,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Changes = map[string]any{}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &entry.Changes); err != nil {
				return nil, err
			}
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
