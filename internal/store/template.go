package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// TemplateStore defines the interface for task template persistence.
// Like TaskStore, every method is scoped to an owning user.
type TemplateStore interface {
	// Create saves a new template to the store.
	Create(ctx context.Context, tmpl *domain.TaskTemplate) error

	// GetByID retrieves a template by ID, scoped to the owner.
	// Returns ErrTemplateNotFound if no such template is owned by ownerID.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.TaskTemplate, error)

	// List returns all of the owner's templates, newest first.
	List(ctx context.Context, ownerID uuid.UUID) ([]*domain.TaskTemplate, error)

	// Update persists changes to an existing template, scoped to its owner.
	// Returns ErrTemplateNotFound if no such template is owned by the
	// template's UserID.
	Update(ctx context.Context, tmpl *domain.TaskTemplate) error

	// Delete removes a template, scoped to the owner. Tasks created from
	// the template are not touched.
	// Returns ErrTemplateNotFound if no such template is owned by ownerID.
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}
