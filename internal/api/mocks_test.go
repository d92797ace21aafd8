package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// mockUserService is a function-field mock of service.UserService.
type mockUserService struct {
	registerFn       func(ctx context.Context, name, email, password string) (*domain.User, error)
	authenticateFn   func(ctx context.Context, email, password string) (*domain.User, error)
	getFn            func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	updateProfileFn  func(ctx context.Context, userID uuid.UUID, input service.UpdateProfileInput) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	profileSummaryFn func(ctx context.Context, userID uuid.UUID) (*service.ProfileSummary, error)
}

var _ service.UserService = (*mockUserService)(nil)

func (m *mockUserService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return m.registerFn(ctx, name, email, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.authenticateFn(ctx, email, password)
}

func (m *mockUserService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return m.getFn(ctx, userID)
}

func (m *mockUserService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	input service.UpdateProfileInput,
) (*domain.User, error) {
	return m.updateProfileFn(ctx, userID, input)
}

func (m *mockUserService) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	return m.changePasswordFn(ctx, userID, currentPassword, newPassword)
}

func (m *mockUserService) ProfileSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*service.ProfileSummary, error) {
	return m.profileSummaryFn(ctx, userID)
}

// mockTaskService is a function-field mock of service.TaskService.
type mockTaskService struct {
	createFn             func(ctx context.Context, ownerID uuid.UUID, input service.CreateTaskInput) (*domain.Task, error)
	getFn                func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	listFn               func(ctx context.Context, ownerID uuid.UUID, params service.ListTasksParams) ([]*domain.Task, error)
	updateFn             func(ctx context.Context, ownerID, taskID uuid.UUID, input service.UpdateTaskInput) (*domain.Task, error)
	deleteFn             func(ctx context.Context, ownerID, taskID uuid.UUID) error
	bulkUpdateFn         func(ctx context.Context, ownerID uuid.UUID, taskIDs []uuid.UUID, updates store.TaskUpdates) (*service.BulkResult, error)
	bulkDeleteFn         func(ctx context.Context, ownerID uuid.UUID, taskIDs []uuid.UUID) (*service.BulkResult, error)
	createFromTemplateFn func(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.Task, error)
	statisticsFn         func(ctx context.Context, ownerID uuid.UUID) (*service.TaskStatistics, error)
}

var _ service.TaskService = (*mockTaskService)(nil)

func (m *mockTaskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input service.CreateTaskInput,
) (*domain.Task, error) {
	return m.createFn(ctx, ownerID, input)
}

func (m *mockTaskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return m.getFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) List(
	ctx context.Context,
	ownerID uuid.UUID,
	params service.ListTasksParams,
) ([]*domain.Task, error) {
	return m.listFn(ctx, ownerID, params)
}

func (m *mockTaskService) Update(
	ctx context.Context,
	ownerID, taskID uuid.UUID,
	input service.UpdateTaskInput,
) (*domain.Task, error) {
	return m.updateFn(ctx, ownerID, taskID, input)
}

func (m *mockTaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return m.deleteFn(ctx, ownerID, taskID)
}

func (m *mockTaskService) BulkUpdate(
	ctx context.Context,
	ownerID uuid.UUID,
	taskIDs []uuid.UUID,
	updates store.TaskUpdates,
) (*service.BulkResult, error) {
	return m.bulkUpdateFn(ctx, ownerID, taskIDs, updates)
}

func (m *mockTaskService) BulkDelete(
	ctx context.Context,
	ownerID uuid.UUID,
	taskIDs []uuid.UUID,
) (*service.BulkResult, error) {
	return m.bulkDeleteFn(ctx, ownerID, taskIDs)
}

func (m *mockTaskService) CreateFromTemplate(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
) (*domain.Task, error) {
	return m.createFromTemplateFn(ctx, ownerID, templateID)
}

func (m *mockTaskService) Statistics(
	ctx context.Context,
	ownerID uuid.UUID,
) (*service.TaskStatistics, error) {
	return m.statisticsFn(ctx, ownerID)
}

// mockTemplateService is a function-field mock of service.TemplateService.
type mockTemplateService struct {
	createFn func(ctx context.Context, ownerID uuid.UUID, input service.CreateTemplateInput) (*domain.TaskTemplate, error)
	getFn    func(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.TaskTemplate, error)
	listFn   func(ctx context.Context, ownerID uuid.UUID) ([]*domain.TaskTemplate, error)
	updateFn func(ctx context.Context, ownerID, templateID uuid.UUID, input service.UpdateTemplateInput) (*domain.TaskTemplate, error)
	deleteFn func(ctx context.Context, ownerID, templateID uuid.UUID) error
}

var _ service.TemplateService = (*mockTemplateService)(nil)

func (m *mockTemplateService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	input service.CreateTemplateInput,
) (*domain.TaskTemplate, error) {
	return m.createFn(ctx, ownerID, input)
}

func (m *mockTemplateService) Get(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
) (*domain.TaskTemplate, error) {
	return m.getFn(ctx, ownerID, templateID)
}

func (m *mockTemplateService) List(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.TaskTemplate, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockTemplateService) Update(
	ctx context.Context,
	ownerID, templateID uuid.UUID,
	input service.UpdateTemplateInput,
) (*domain.TaskTemplate, error) {
	return m.updateFn(ctx, ownerID, templateID, input)
}

func (m *mockTemplateService) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	return m.deleteFn(ctx, ownerID, templateID)
}

// mockJWTService is a function-field mock of auth.JWTService.
type mockJWTService struct {
	generateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	validateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*mockJWTService)(nil)

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.generateTokenFn != nil {
		return m.generateTokenFn(ctx, userID)
	}
	return "test-token", nil
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	return m.validateTokenFn(ctx, tokenString)
}

// mockActivityStore is a function-field mock of store.ActivityStore.
type mockActivityStore struct {
	appendFn func(ctx context.Context, entry *domain.ActivityLog) error
	listFn   func(ctx context.Context, ownerID uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error)
}

var _ store.ActivityStore = (*mockActivityStore)(nil)

func (m *mockActivityStore) Append(ctx context.Context, entry *domain.ActivityLog) error {
	return m.appendFn(ctx, entry)
}

func (m *mockActivityStore) List(
	ctx context.Context,
	ownerID uuid.UUID,
	filter store.ActivityFilter,
) ([]*domain.ActivityLog, error) {
	return m.listFn(ctx, ownerID, filter)
}

// newJSONRequest builds a request with a JSON body and content type.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// withUserID attaches an authenticated user ID the way the auth
// middleware does.
func withUserID(r *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(r.Context(), shared.UserIDContextKey, userID)
	return r.WithContext(ctx)
}

// decodeBody unmarshals the recorded response body into v.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}
