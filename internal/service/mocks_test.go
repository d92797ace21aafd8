package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// Function-field mocks: each test assigns only the methods it expects to
// be called; anything else panics loudly.

type mockTaskStore struct {
	createFn       func(ctx context.Context, task *domain.Task) error
	getByIDFn      func(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error)
	updateFn       func(ctx context.Context, task *domain.Task) error
	deleteFn       func(ctx context.Context, ownerID, id uuid.UUID) error
	listFn         func(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error)
	listByIDsFn    func(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) ([]*domain.Task, error)
	updateManyFn   func(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID, updates store.TaskUpdates) (int64, error)
	deleteManyFn   func(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)
	statusCountsFn func(ctx context.Context, ownerID uuid.UUID) (map[domain.TaskStatus]int, error)
	statisticsFn   func(ctx context.Context, ownerID uuid.UUID, now time.Time) (*store.TaskStatistics, error)
}

var _ store.TaskStore = (*mockTaskStore)(nil)

func (m *mockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	return m.createFn(ctx, task)
}

func (m *mockTaskStore) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFn(ctx, ownerID, id)
}

func (m *mockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return m.updateFn(ctx, task)
}

func (m *mockTaskStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFn(ctx, ownerID, id)
}

func (m *mockTaskStore) List(ctx context.Context, query store.TaskQuery) ([]*domain.Task, error) {
	return m.listFn(ctx, query)
}

func (m *mockTaskStore) ListByIDs(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) ([]*domain.Task, error) {
	return m.listByIDsFn(ctx, ownerID, ids)
}

func (m *mockTaskStore) UpdateMany(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
	updates store.TaskUpdates,
) (int64, error) {
	return m.updateManyFn(ctx, ownerID, ids, updates)
}

func (m *mockTaskStore) DeleteMany(
	ctx context.Context,
	ownerID uuid.UUID,
	ids []uuid.UUID,
) (int64, error) {
	return m.deleteManyFn(ctx, ownerID, ids)
}

func (m *mockTaskStore) StatusCounts(
	ctx context.Context,
	ownerID uuid.UUID,
) (map[domain.TaskStatus]int, error) {
	return m.statusCountsFn(ctx, ownerID)
}

func (m *mockTaskStore) Statistics(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
) (*store.TaskStatistics, error) {
	return m.statisticsFn(ctx, ownerID, now)
}

type mockTemplateStore struct {
	createFn  func(ctx context.Context, tmpl *domain.TaskTemplate) error
	getByIDFn func(ctx context.Context, ownerID, id uuid.UUID) (*domain.TaskTemplate, error)
	listFn    func(ctx context.Context, ownerID uuid.UUID) ([]*domain.TaskTemplate, error)
	updateFn  func(ctx context.Context, tmpl *domain.TaskTemplate) error
	deleteFn  func(ctx context.Context, ownerID, id uuid.UUID) error
}

var _ store.TemplateStore = (*mockTemplateStore)(nil)

func (m *mockTemplateStore) Create(ctx context.Context, tmpl *domain.TaskTemplate) error {
	return m.createFn(ctx, tmpl)
}

func (m *mockTemplateStore) GetByID(
	ctx context.Context,
	ownerID, id uuid.UUID,
) (*domain.TaskTemplate, error) {
	return m.getByIDFn(ctx, ownerID, id)
}

func (m *mockTemplateStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockTemplateStore) Update(ctx context.Context, tmpl *domain.TaskTemplate) error {
	return m.updateFn(ctx, tmpl)
}

func (m *mockTemplateStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.deleteFn(ctx, ownerID, id)
}

// mockActivityStore records every appended entry for inspection.
type mockActivityStore struct {
	appended []*domain.ActivityLog
	appendFn func(ctx context.Context, entry *domain.ActivityLog) error
	listFn   func(ctx context.Context, ownerID uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error)
}

var _ store.ActivityStore = (*mockActivityStore)(nil)

func (m *mockActivityStore) Append(ctx context.Context, entry *domain.ActivityLog) error {
	if m.appendFn != nil {
		if err := m.appendFn(ctx, entry); err != nil {
			return err
		}
	}
	m.appended = append(m.appended, entry)
	return nil
}

func (m *mockActivityStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.ActivityFilter,
) ([]*domain.ActivityLog, error) {
	return m.listFn(ctx, ownerID, filter)
}

// actions summarizes the appended entries for assertions.
func (m *mockActivityStore) actions() []domain.ActivityAction {
	actions := make([]domain.ActivityAction, 0, len(m.appended))
	for _, entry := range m.appended {
		actions = append(actions, entry.Action)
	}
	return actions
}

type mockUserStore struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	updateFn     func(ctx context.Context, user *domain.User) error
}

var _ store.UserStore = (*mockUserStore)(nil)

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	return m.updateFn(ctx, user)
}

// mockPasswordHasher deterministically "hashes" by prefixing, keeping
// assertions readable.
type mockPasswordHasher struct {
	hashFn    func(password string) (string, error)
	compareFn func(hashedPassword, password string) error
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(password)
	}
	return "hashed:" + password, nil
}

func (m *mockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.compareFn != nil {
		return m.compareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return errMismatchedPassword
	}
	return nil
}

var errMismatchedPassword = errors.New("password mismatch")
