package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// DefaultActivityLimit caps activity feed queries when the caller does
// not supply a limit.
const DefaultActivityLimit = 50

// ActivityFilter narrows an activity feed query.
type ActivityFilter struct {
	// TaskID limits the feed to a single task when set.
	TaskID *uuid.UUID

	// Limit caps the number of returned entries. Zero or negative values
	// fall back to DefaultActivityLimit.
	Limit int
}

// ActivityStore defines the interface for the append-only activity log.
// Entries are never updated or deleted by the system.
type ActivityStore interface {
	// Append saves a new activity log entry.
	Append(ctx context.Context, log *domain.ActivityLog) error

	// List returns the owner's activity entries, newest first, honoring
	// the filter.
	List(ctx context.Context, ownerID uuid.UUID, filter ActivityFilter) ([]*domain.ActivityLog, error)
}
