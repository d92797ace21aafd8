package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Template-specific validation errors
var (
	// ErrTemplateIDEmpty is returned when a template ID is empty or nil.
	ErrTemplateIDEmpty = errors.New("template ID cannot be empty")

	// ErrTemplateUserIDEmpty is returned when a template's user ID is empty or nil.
	ErrTemplateUserIDEmpty = errors.New("template user ID cannot be empty")

	// ErrTemplateNameEmpty is returned when a template's name is empty.
	ErrTemplateNameEmpty = errors.New("template name cannot be empty")

	// ErrTemplateTitleEmpty is returned when a template's title is empty.
	ErrTemplateTitleEmpty = errors.New("template title cannot be empty")
)

// TaskTemplate is a reusable blueprint that seeds a new task's initial
// field values. Deleting a template does not cascade to tasks created
// from it; their TemplateID reference is left dangling on purpose.
type TaskTemplate struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"userId"`
	Name        string       `json:"name"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    TaskCategory `json:"category"`
	Priority    TaskPriority `json:"priority"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NewTaskTemplate creates a new TaskTemplate owned by the given user with
// enum defaults applied. Returns an error if validation fails.
func NewTaskTemplate(userID uuid.UUID, name, title string) (*TaskTemplate, error) {
	tmpl := &TaskTemplate{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Title:     strings.TrimSpace(title),
		Category:  TaskCategoryOther,
		Priority:  TaskPriorityMedium,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Validate checks if the TaskTemplate has valid data.
// Returns an error if any field fails validation.
func (t *TaskTemplate) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTemplateIDEmpty
	}

	if t.UserID == uuid.Nil {
		return ErrTemplateUserIDEmpty
	}

	if strings.TrimSpace(t.Name) == "" {
		return ErrTemplateNameEmpty
	}

	if strings.TrimSpace(t.Title) == "" {
		return ErrTemplateTitleEmpty
	}

	if !t.Priority.Valid() {
		return ErrInvalidTaskPriority
	}

	if !t.Category.Valid() {
		return ErrInvalidTaskCategory
	}

	return nil
}
