package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = errors.New("task ID cannot be empty")

	// ErrTaskUserIDEmpty is returned when a task's user ID is empty or nil.
	ErrTaskUserIDEmpty = errors.New("task user ID cannot be empty")

	// ErrTaskTitleEmpty is returned when a task's title is empty.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrInvalidTaskStatus is returned when a task status is not a known value.
	ErrInvalidTaskStatus = errors.New("invalid task status")

	// ErrInvalidTaskPriority is returned when a task priority is not a known value.
	ErrInvalidTaskPriority = errors.New("invalid task priority")

	// ErrInvalidTaskCategory is returned when a task category is not a known value.
	ErrInvalidTaskCategory = errors.New("invalid task category")
)

// TaskStatus is the closed set of lifecycle states a task moves through.
type TaskStatus string

// Valid task statuses. TaskStatusTodo is the default for new tasks.
const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether the status is one of the known values.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority is the closed set of task priorities.
type TaskPriority string

// Valid task priorities. TaskPriorityMedium is the default for new tasks.
const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}

// TaskCategory is the closed set of task categories.
type TaskCategory string

// Valid task categories. TaskCategoryOther is the default for new tasks.
const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryShopping TaskCategory = "shopping"
	TaskCategoryHealth   TaskCategory = "health"
	TaskCategoryOther    TaskCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryShopping,
		TaskCategoryHealth, TaskCategoryOther:
		return true
	}
	return false
}

// Task represents a single task owned by a user. The owning user is set at
// creation and is immutable afterwards; every query and mutation is scoped
// to it.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Notes       string       `json:"notes"`
	Category    TaskCategory `json:"category"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	TemplateID  *uuid.UUID   `json:"templateId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewTask creates a new Task owned by the given user with enum defaults
// applied (status todo, priority medium, category other).
// Returns an error if validation fails.
func NewTask(userID uuid.UUID, title string) (*Task, error) {
	task := &Task{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     strings.TrimSpace(title),
		Category:  TaskCategoryOther,
		Status:    TaskStatusTodo,
		Priority:  TaskPriorityMedium,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTaskUserIDEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTaskTitleEmpty
	}

	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}

	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}

	if !t.Category.Valid() {
		return ErrInvalidTaskCategory
	}

	return nil
}
