package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// CreateTemplateInput carries the fields accepted when creating a
// template. Zero-valued enums fall back to the domain defaults.
type CreateTemplateInput struct {
	Name        string
	Title       string
	Description string
	Category    domain.TaskCategory
	Priority    domain.TaskPriority
}

// UpdateTemplateInput carries the fields accepted when updating a
// template. Nil fields are left unchanged.
type UpdateTemplateInput struct {
	Name        *string
	Title       *string
	Description *string
	Category    *domain.TaskCategory
	Priority    *domain.TaskPriority
}

// TemplateService provides owner-scoped CRUD over task templates.
type TemplateService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTemplateInput) (*domain.TaskTemplate, error)
	Get(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.TaskTemplate, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.TaskTemplate, error)
	Update(ctx context.Context, ownerID, templateID uuid.UUID, input UpdateTemplateInput) (*domain.TaskTemplate, error)
	Delete(ctx context.Context, ownerID, templateID uuid.UUID) error
}

// templateServiceImpl implements the TemplateService interface.
type templateServiceImpl struct {
	templates store.TemplateStore
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewTemplateService creates a new TemplateService backed by the given store.
func NewTemplateService(templates store.TemplateStore, log *slog.Logger) TemplateService {
	if log == nil {
		log = slog.Default()
	}
	return &templateServiceImpl{
		templates: templates,
		logger:    log.With(slog.String("component", "template_service")),
		timeFunc:  time.Now,
	}
}

// Create validates and persists a new template.
func (s *templateServiceImpl) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTemplateInput,
) (*domain.TaskTemplate, error) {
	tmpl, err := domain.NewTaskTemplate(ownerID, input.Name, input.Title)
	if err != nil {
		return nil, err
	}

	tmpl.Description = input.Description
	if input.Category != "" {
		tmpl.Category = input.Category
	}
	if input.Priority != "" {
		tmpl.Priority = input.Priority
	}

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	if err := s.templates.Create(ctx, tmpl); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Get returns a single owned template.
func (s *templateServiceImpl) Get(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
) (*domain.TaskTemplate, error) {
	return s.templates.GetByID(ctx, ownerID, templateID)
}

// List returns the owner's templates, newest first.
func (s *templateServiceImpl) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	return s.templates.List(ctx, ownerID)
}

// Update applies the set fields to an owned template.
func (s *templateServiceImpl) Update(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
	input UpdateTemplateInput,
) (*domain.TaskTemplate, error) {
	tmpl, err := s.templates.GetByID(ctx, ownerID, templateID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		tmpl.Name = *input.Name
	}
	if input.Title != nil {
		tmpl.Title = *input.Title
	}
	if input.Description != nil {
		tmpl.Description = *input.Description
	}
	if input.Category != nil {
		tmpl.Category = *input.Category
	}
	if input.Priority != nil {
		tmpl.Priority = *input.Priority
	}
	tmpl.UpdatedAt = s.timeFunc().UTC()

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	if err := s.templates.Update(ctx, tmpl); err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Delete removes an owned template. Tasks already created from it keep
// their reference.
func (s *templateServiceImpl) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	return s.templates.Delete(ctx, ownerID, templateID)
}
