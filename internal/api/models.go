package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// MessageResponse carries a human-readable confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateTaskRequest defines the payload for task creation.
type CreateTaskRequest struct {
	Title       string              `json:"title"       validate:"required"`
	Description string              `json:"description"`
	Notes       string              `json:"notes"`
	Category    domain.TaskCategory `json:"category"    validate:"omitempty,oneof=work personal shopping health other"`
	Status      domain.TaskStatus   `json:"status"      validate:"omitempty,oneof=todo in-progress done"`
	Priority    domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time          `json:"dueDate"`
}

// UpdateTaskRequest defines the payload for task updates. Absent fields
// are left unchanged.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"       validate:"omitempty,min=1"`
	Description *string              `json:"description"`
	Notes       *string              `json:"notes"`
	Category    *domain.TaskCategory `json:"category"    validate:"omitempty,oneof=work personal shopping health other"`
	Status      *domain.TaskStatus   `json:"status"      validate:"omitempty,oneof=todo in-progress done"`
	Priority    *domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time           `json:"dueDate"`
}

// TaskResponse wraps a single task.
type TaskResponse struct {
	Task *domain.Task `json:"task"`
}

// TaskListResponse wraps a task listing.
type TaskListResponse struct {
	Tasks []*domain.Task `json:"tasks"`
}

// BulkTaskUpdates defines the fields a bulk update may change.
type BulkTaskUpdates struct {
	Status   *domain.TaskStatus   `json:"status"   validate:"omitempty,oneof=todo in-progress done"`
	Priority *domain.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category *domain.TaskCategory `json:"category" validate:"omitempty,oneof=work personal shopping health other"`
}

// BulkUpdateRequest defines the payload for the bulk task update endpoint.
type BulkUpdateRequest struct {
	TaskIDs []uuid.UUID     `json:"taskIds"`
	Updates BulkTaskUpdates `json:"updates"`
}

// BulkUpdateResponse reports the outcome of a bulk update.
type BulkUpdateResponse struct {
	Message       string `json:"message"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// BulkDeleteRequest defines the payload for the bulk task delete endpoint.
type BulkDeleteRequest struct {
	TaskIDs []uuid.UUID `json:"taskIds"`
}

// BulkDeleteResponse reports the outcome of a bulk delete.
type BulkDeleteResponse struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

// StatisticsResponse wraps the task statistics aggregation.
type StatisticsResponse struct {
	Stats *service.TaskStatistics `json:"stats"`
}

// CreateTemplateRequest defines the payload for template creation.
type CreateTemplateRequest struct {
	Name        string              `json:"name"        validate:"required"`
	Title       string              `json:"title"       validate:"required"`
	Description string              `json:"description"`
	Category    domain.TaskCategory `json:"category"    validate:"omitempty,oneof=work personal shopping health other"`
	Priority    domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

// UpdateTemplateRequest defines the payload for template updates.
type UpdateTemplateRequest struct {
	Name        *string              `json:"name"        validate:"omitempty,min=1"`
	Title       *string              `json:"title"       validate:"omitempty,min=1"`
	Description *string              `json:"description"`
	Category    *domain.TaskCategory `json:"category"    validate:"omitempty,oneof=work personal shopping health other"`
	Priority    *domain.TaskPriority `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

// TemplateResponse wraps a single template.
type TemplateResponse struct {
	Template *domain.TaskTemplate `json:"template"`
}

// TemplateListResponse wraps a template listing.
type TemplateListResponse struct {
	Templates []*domain.TaskTemplate `json:"templates"`
}

// ActivityListResponse wraps an activity feed page.
type ActivityListResponse struct {
	Logs []*domain.ActivityLog `json:"logs"`
}

// UpdateProfileRequest defines the payload for profile updates.
type UpdateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	DarkMode *bool   `json:"darkMode"`
	Theme    *string `json:"theme"    validate:"omitempty,min=1"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=72"`
}

// ProfileResponse pairs the user with their task counts by status.
type ProfileResponse struct {
	User  *domain.User              `json:"user"`
	Stats map[domain.TaskStatus]int `json:"stats"`
}
