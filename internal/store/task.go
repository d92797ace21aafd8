package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// TaskUpdates carries the fields a bulk update may apply to matched tasks.
// Only the closed-enum fields are bulk-updatable; nil fields are left
// untouched.
type TaskUpdates struct {
	Status   *domain.TaskStatus
	Priority *domain.TaskPriority
	Category *domain.TaskCategory
}

// IsEmpty reports whether the update would change nothing.
func (u TaskUpdates) IsEmpty() bool {
	return u.Status == nil && u.Priority == nil && u.Category == nil
}

// Changes renders the update as an audit payload for the activity log.
func (u TaskUpdates) Changes() map[string]any {
	changes := map[string]any{}
	if u.Status != nil {
		changes["status"] = string(*u.Status)
	}
	if u.Priority != nil {
		changes["priority"] = string(*u.Priority)
	}
	if u.Category != nil {
		changes["category"] = string(*u.Category)
	}
	return changes
}

// TaskStatistics aggregates a user's tasks for the statistics endpoint.
// The group maps omit zero-count groups; only the profile summary
// zero-fills.
type TaskStatistics struct {
	Total      int
	ByStatus   map[domain.TaskStatus]int
	ByPriority map[domain.TaskPriority]int
	ByCategory map[domain.TaskCategory]int
	Overdue    int
	ThisWeek   int
}

// TaskStore defines the interface for task data persistence. Every method
// is scoped to an owning user; a task owned by another user behaves
// exactly like a nonexistent one.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID, scoped to the owner.
	// Returns ErrTaskNotFound if no such task is owned by ownerID.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)

	// Update persists changes to an existing task, scoped to its owner.
	// Returns ErrTaskNotFound if no such task is owned by the task's UserID.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task, scoped to the owner.
	// Returns ErrTaskNotFound if no such task is owned by ownerID.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error

	// List returns the tasks matching the query, filtered and sorted as it
	// specifies. Owner scoping comes from the query and is unconditional.
	List(ctx context.Context, query TaskQuery) ([]*domain.Task, error)

	// ListByIDs returns the owned tasks among ids. Unmatched ids are
	// silently absent from the result.
	ListByIDs(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*domain.Task, error)

	// UpdateMany applies updates to all owned tasks among ids in a single
	// statement and returns the number of rows modified.
	UpdateMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID, updates TaskUpdates) (int64, error)

	// DeleteMany removes all owned tasks among ids in a single statement
	// and returns the number of rows deleted.
	DeleteMany(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)

	// StatusCounts returns the owner's task counts grouped by status.
	// Statuses with no tasks are absent; callers zero-fill as needed.
	StatusCounts(ctx context.Context, ownerID uuid.UUID) (map[domain.TaskStatus]int, error)

	// Statistics aggregates the owner's tasks relative to now: totals,
	// group counts, overdue count and this-week count.
	Statistics(ctx context.Context, ownerID uuid.UUID, now time.Time) (*TaskStatistics, error)
}
