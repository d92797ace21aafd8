package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

func TestUserHandlerProfile(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	handler := NewUserHandler(&mockUserService{
		profileSummaryFn: func(ctx context.Context, userID uuid.UUID) (*service.ProfileSummary, error) {
			return &service.ProfileSummary{
				User: user,
				Stats: map[domain.TaskStatus]int{
					domain.TaskStatusTodo:       0,
					domain.TaskStatusInProgress: 1,
					domain.TaskStatusDone:       3,
				},
			}, nil
		},
	})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/profile/me", nil), user.ID)
	rec := httptest.NewRecorder()
	handler.Profile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  *domain.User              `json:"user"`
		Stats map[domain.TaskStatus]int `json:"stats"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, user.Email, resp.User.Email)
	assert.Equal(t, 0, resp.Stats[domain.TaskStatusTodo], "zero counts stay present")
	assert.Equal(t, 3, resp.Stats[domain.TaskStatusDone])
}

func TestUserHandlerUpdateProfile(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		user := testUser(t)
		handler := NewUserHandler(&mockUserService{
			updateProfileFn: func(ctx context.Context, userID uuid.UUID, input service.UpdateProfileInput) (*domain.User, error) {
				require.NotNil(t, input.Theme)
				assert.Equal(t, "forest", *input.Theme)
				require.NotNil(t, input.DarkMode)
				assert.True(t, *input.DarkMode)
				assert.Nil(t, input.Name)
				return user, nil
			},
		})

		req := withUserID(newJSONRequest(t, http.MethodPut, "/api/user/profile", map[string]any{
			"theme":    "forest",
			"darkMode": true,
		}), user.ID)
		rec := httptest.NewRecorder()
		handler.UpdateProfile(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid email fails validation", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{
			updateProfileFn: func(ctx context.Context, userID uuid.UUID, input service.UpdateProfileInput) (*domain.User, error) {
				t.Fatal("service must not be called on validation failure")
				return nil, nil
			},
		})

		req := withUserID(newJSONRequest(t, http.MethodPut, "/api/user/profile",
			map[string]string{"email": "not-an-email"}), uuid.New())
		rec := httptest.NewRecorder()
		handler.UpdateProfile(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestUserHandlerChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{
			changePasswordFn: func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
				assert.Equal(t, "old-password-1", currentPassword)
				assert.Equal(t, "new-password-1", newPassword)
				return nil
			},
		})

		req := withUserID(newJSONRequest(t, http.MethodPut, "/api/user/password", ChangePasswordRequest{
			CurrentPassword: "old-password-1",
			NewPassword:     "new-password-1",
		}), uuid.New())
		rec := httptest.NewRecorder()
		handler.ChangePassword(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp MessageResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Password updated successfully", resp.Message)
	})

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{
			changePasswordFn: func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
				return service.ErrCurrentPasswordIncorrect
			},
		})

		req := withUserID(newJSONRequest(t, http.MethodPut, "/api/user/password", ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "new-password-1",
		}), uuid.New())
		rec := httptest.NewRecorder()
		handler.ChangePassword(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp shared.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Current password is incorrect", resp.Message)
	})

	t.Run("short new password fails validation", func(t *testing.T) {
		t.Parallel()

		handler := NewUserHandler(&mockUserService{})

		req := withUserID(newJSONRequest(t, http.MethodPut, "/api/user/password", ChangePasswordRequest{
			CurrentPassword: "old-password-1",
			NewPassword:     "short",
		}), uuid.New())
		rec := httptest.NewRecorder()
		handler.ChangePassword(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
