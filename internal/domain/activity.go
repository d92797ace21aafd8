package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Activity-log-specific validation errors
var (
	// ErrActivityIDEmpty is returned when an activity log ID is empty or nil.
	ErrActivityIDEmpty = errors.New("activity log ID cannot be empty")

	// ErrActivityUserIDEmpty is returned when an activity log's user ID is empty or nil.
	ErrActivityUserIDEmpty = errors.New("activity log user ID cannot be empty")

	// ErrActivityTaskIDEmpty is returned when an activity log's task ID is empty or nil.
	ErrActivityTaskIDEmpty = errors.New("activity log task ID cannot be empty")

	// ErrInvalidActivityAction is returned when an action is not a known value.
	ErrInvalidActivityAction = errors.New("invalid activity action")
)

// ActivityAction is the closed set of task lifecycle events recorded in
// the activity log.
type ActivityAction string

// Valid activity actions.
const (
	ActivityActionCreated         ActivityAction = "created"
	ActivityActionUpdated         ActivityAction = "updated"
	ActivityActionDeleted         ActivityAction = "deleted"
	ActivityActionStatusChanged   ActivityAction = "status_changed"
	ActivityActionPriorityChanged ActivityAction = "priority_changed"
)

// Valid reports whether the action is one of the known values.
func (a ActivityAction) Valid() bool {
	switch a {
	case ActivityActionCreated, ActivityActionUpdated, ActivityActionDeleted,
		ActivityActionStatusChanged, ActivityActionPriorityChanged:
		return true
	}
	return false
}

// FieldChange records a single field transition inside an activity log's
// changes payload.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ActivityLog is an append-only audit record of a task lifecycle event.
// The task reference is kept even after the task is deleted so bulk
// deletions remain auditable; there is deliberately no foreign key on it.
type ActivityLog struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"userId"`
	TaskID      uuid.UUID      `json:"taskId"`
	Action      ActivityAction `json:"action"`
	Changes     map[string]any `json:"changes"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// NewActivityLog creates a new ActivityLog for the given user, task and
// action. Changes defaults to an empty payload; callers attach field
// transitions where the action warrants it.
// Returns an error if validation fails.
func NewActivityLog(
	userID, taskID uuid.UUID,
	action ActivityAction,
	description string,
) (*ActivityLog, error) {
	log := &ActivityLog{
		ID:          uuid.New(),
		UserID:      userID,
		TaskID:      taskID,
		Action:      action,
		Changes:     map[string]any{},
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ActivityLog has valid data.
// Returns an error if any field fails validation.
func (l *ActivityLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrActivityIDEmpty
	}

	if l.UserID == uuid.Nil {
		return ErrActivityUserIDEmpty
	}

	if l.TaskID == uuid.Nil {
		return ErrActivityTaskIDEmpty
	}

	if !l.Action.Valid() {
		return ErrInvalidActivityAction
	}

	return nil
}
