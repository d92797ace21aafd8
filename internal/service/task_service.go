package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// Zero-valued enums fall back to the domain defaults.
type CreateTaskInput struct {
	Title       string
	Description string
	Notes       string
	Category    domain.TaskCategory
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	DueDate     *time.Time
}

// UpdateTaskInput carries the fields accepted when updating a task.
// Nil fields are left unchanged. There is intentionally no owner field;
// ownership is immutable.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Notes       *string
	Category    *domain.TaskCategory
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	DueDate     *time.Time
}

// ListTasksParams mirrors the task listing query string. All fields are
// optional; owner scoping is supplied separately and unconditionally.
type ListTasksParams struct {
	Status     domain.TaskStatus
	Priority   domain.TaskPriority
	Category   domain.TaskCategory
	DateFilter store.DateFilter
	Search     string
	SortBy     string
	SortOrder  string
}

// TaskStatistics is the aggregation returned by the statistics endpoint.
// The group maps omit zero-count groups.
type TaskStatistics struct {
	Total          int                         `json:"total"`
	ByStatus       map[domain.TaskStatus]int   `json:"byStatus"`
	ByPriority     map[domain.TaskPriority]int `json:"byPriority"`
	ByCategory     map[domain.TaskCategory]int `json:"byCategory"`
	Overdue        int                         `json:"overdue"`
	ThisWeek       int                         `json:"thisWeek"`
	CompletionRate int                         `json:"completionRate"`
}

// BulkResult reports how many tasks a bulk operation touched.
type BulkResult struct {
	Count int64
}

// TaskService provides task CRUD, bulk operations, template instantiation
// and statistics, writing an activity record alongside each mutation.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*domain.Task, error)
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, params ListTasksParams) ([]*domain.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	BulkUpdate(ctx context.Context, ownerID uuid.UUID, taskIDs []uuid.UUID, updates store.TaskUpdates) (*BulkResult, error)
	BulkDelete(ctx context.Context, ownerID uuid.UUID, taskIDs []uuid.UUID) (*BulkResult, error)
	CreateFromTemplate(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.Task, error)
	Statistics(ctx context.Context, ownerID uuid.UUID) (*TaskStatistics, error)
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	tasks     store.TaskStore
	templates store.TemplateStore
	activity  store.ActivityStore
	logger    *slog.Logger
	timeFunc  func() time.Time // Injectable for testing
}

// NewTaskService creates a new TaskService backed by the given stores.
func NewTaskService(
	tasks store.TaskStore,
	templates store.TemplateStore,
	activity store.ActivityStore,
	log *slog.Logger,
) TaskService {
	if log == nil {
		log = slog.Default()
	}
	return &taskServiceImpl{
		tasks:     tasks,
		templates: templates,
		activity:  activity,
		logger:    log.With(slog.String("component", "task_service")),
		timeFunc:  time.Now,
	}
}

// Create validates and persists a new task, then appends a "created"
// activity record.
func (s *taskServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, input.Title)
	if err != nil {
		return nil, err
	}

	task.Description = input.Description
	task.Notes = input.Notes
	if input.Category != "" {
		task.Category = input.Category
	}
	if input.Status != "" {
		task.Status = input.Status
	}
	if input.Priority != "" {
		task.Priority = input.Priority
	}
	task.DueDate = input.DueDate

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	err = s.appendActivity(ctx, ownerID, task.ID, domain.ActivityActionCreated,
		nil, fmt.Sprintf("Task %q created", task.Title))
	if err != nil {
		return nil, err
	}

	return task, nil
}

// Get returns a single owned task.
func (s *taskServiceImpl) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, ownerID, taskID)
}

// List returns the owner's tasks filtered and sorted per params.
func (s *taskServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
	params ListTasksParams,
) ([]*domain.Task, error) {
	query := store.TaskQuery{
		OwnerID:    ownerID,
		Status:     params.Status,
		Priority:   params.Priority,
		Category:   params.Category,
		DateFilter: params.DateFilter,
		Search:     params.Search,
		SortBy:     params.SortBy,
		SortOrder:  params.SortOrder,
	}
	return s.tasks.List(ctx, query)
}

// Update applies the set fields to an owned task and records the change.
// A status transition produces one status_changed record and a priority
// transition one priority_changed record; only when neither changed does
// a single generic updated record get written. The three are mutually
// exclusive with the generic record per call, keeping the log
// proportional to meaningful transitions.
func (s *taskServiceImpl) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	input UpdateTaskInput,
) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	prevStatus := task.Status
	prevPriority := task.Priority

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	task.UpdatedAt = s.timeFunc().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	statusChanged := task.Status != prevStatus
	priorityChanged := task.Priority != prevPriority

	if statusChanged {
		changes := map[string]any{
			"status": domain.FieldChange{From: string(prevStatus), To: string(task.Status)},
		}
		err := s.appendActivity(ctx, ownerID, task.ID, domain.ActivityActionStatusChanged,
			changes, fmt.Sprintf("Status changed from %s to %s", prevStatus, task.Status))
		if err != nil {
			return nil, err
		}
	}
	if priorityChanged {
		changes := map[string]any{
			"priority": domain.FieldChange{From: string(prevPriority), To: string(task.Priority)},
		}
		err := s.appendActivity(ctx, ownerID, task.ID, domain.ActivityActionPriorityChanged,
			changes, fmt.Sprintf("Priority changed from %s to %s", prevPriority, task.Priority))
		if err != nil {
			return nil, err
		}
	}
	if !statusChanged && !priorityChanged {
		err := s.appendActivity(ctx, ownerID, task.ID, domain.ActivityActionUpdated,
			nil, fmt.Sprintf("Task %q updated", task.Title))
		if err != nil {
			return nil, err
		}
	}

	return task, nil
}

// Delete removes an owned task, then appends a "deleted" record keeping
// the task reference for audit.
func (s *taskServiceImpl) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}

	return s.appendActivity(ctx, ownerID, taskID, domain.ActivityActionDeleted,
		nil, fmt.Sprintf("Task %q deleted", task.Title))
}

// BulkUpdate applies updates to all owned tasks among taskIDs in one
// store operation. One "updated" record is written per requested id
// whether or not that id matched an owned task; the audit trail mirrors
// the request rather than the effect.
func (s *taskServiceImpl) BulkUpdate(
	ctx context.Context,
	ownerID uuid.UUID,
	taskIDs []uuid.UUID,
	updates store.TaskUpdates,
) (*BulkResult, error) {
	if len(taskIDs) == 0 {
		return nil, ErrEmptyTaskIDs
	}

	modified, err := s.tasks.UpdateMany(ctx, ownerID, taskIDs, updates)
	if err != nil {
		return nil, err
	}

	changes := updates.Changes()
	for _, taskID := range taskIDs {
		err := s.appendActivity(ctx, ownerID, taskID, domain.ActivityActionUpdated,
			changes, "Bulk update applied")
		if err != nil {
			return nil, err
		}
	}

	return &BulkResult{Count: modified}, nil
}

// BulkDelete removes all owned tasks among taskIDs in one store
// operation. Unlike BulkUpdate, it logs only tasks that were actually
// found, writing each record before the deletion happens.
func (s *taskServiceImpl) BulkDelete(
	ctx context.Context,
	ownerID uuid.UUID,
	taskIDs []uuid.UUID,
) (*BulkResult, error) {
	if len(taskIDs) == 0 {
		return nil, ErrEmptyTaskIDs
	}

	tasks, err := s.tasks.ListByIDs(ctx, ownerID, taskIDs)
	if err != nil {
		return nil, err
	}

	for _, task := range tasks {
		err := s.appendActivity(ctx, ownerID, task.ID, domain.ActivityActionDeleted,
			nil, fmt.Sprintf("Task %q deleted (bulk)", task.Title))
		if err != nil {
			return nil, err
		}
	}

	deleted, err := s.tasks.DeleteMany(ctx, ownerID, taskIDs)
	if err != nil {
		return nil, err
	}

	return &BulkResult{Count: deleted}, nil
}

// CreateFromTemplate instantiates a task from an owned template, copying
// title, description, category and priority and stamping the template
// reference. No activity record is written for template-derived tasks.
func (s *taskServiceImpl) CreateFromTemplate(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
) (*domain.Task, error) {
	tmpl, err := s.templates.GetByID(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(ownerID, tmpl.Title)
	if err != nil {
		return nil, err
	}
	task.Description = tmpl.Description
	task.Category = tmpl.Category
	task.Priority = tmpl.Priority
	templateRef := tmpl.ID
	task.TemplateID = &templateRef

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Statistics aggregates the owner's tasks relative to now and derives
// the completion rate, which is 0 for a user with no tasks.
func (s *taskServiceImpl) Statistics(ctx context.Context, ownerID uuid.UUID) (*TaskStatistics, error) {
	counts, err := s.tasks.Statistics(ctx, ownerID, s.timeFunc())
	if err != nil {
		return nil, err
	}

	stats := &TaskStatistics{
		Total:      counts.Total,
		ByStatus:   counts.ByStatus,
		ByPriority: counts.ByPriority,
		ByCategory: counts.ByCategory,
		Overdue:    counts.Overdue,
		ThisWeek:   counts.ThisWeek,
	}
	if counts.Total > 0 {
		done := counts.ByStatus[domain.TaskStatusDone]
		stats.CompletionRate = int(math.Round(float64(done) / float64(counts.Total) * 100))
	}

	return stats, nil
}

// appendActivity builds and persists one activity record. Mutation and
// log write are separate store calls; a crash in between leaves the
// mutation unlogged, an accepted gap.
func (s *taskServiceImpl) appendActivity(
	ctx context.Context,
	userID, taskID uuid.UUID,
	action domain.ActivityAction,
	changes map[string]any,
	description string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	entry, err := domain.NewActivityLog(userID, taskID, action, description)
	if err != nil {
		return err
	}
	if changes != nil {
		entry.Changes = changes
	}

	if err := s.activity.Append(ctx, entry); err != nil {
		log.Error("failed to append activity record",
			slog.String("error", err.Error()),
			slog.String("task_id", taskID.String()),
			slog.String("action", string(action)))
		return err
	}

	return nil
}
