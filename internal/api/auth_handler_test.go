package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

func testUser(t *testing.T) *domain.User {
	t.Helper()

	user, err := domain.NewUser("Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	user.HashedPassword = "hashed"
	user.Password = ""
	return user
}

func TestAuthHandlerRegister(t *testing.T) {
	t.Parallel()

	t.Run("success returns token and user", func(t *testing.T) {
		t.Parallel()

		user := testUser(t)
		handler := NewAuthHandler(&mockUserService{
			registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
				assert.Equal(t, "Alice", name)
				assert.Equal(t, "alice@example.com", email)
				return user, nil
			},
		}, &mockJWTService{})

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Token string       `json:"token"`
			User  *domain.User `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "test-token", resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)
		assert.NotContains(t, rec.Body.String(), "hashed", "hash must not leak into responses")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mockUserService{
			registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
				return nil, store.ErrEmailExists
			},
		}, &mockJWTService{})

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var resp shared.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Email already in use", resp.Message)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mockUserService{
			registerFn: func(ctx context.Context, name, email, password string) (*domain.User, error) {
				t.Fatal("service must not be called on validation failure")
				return nil, nil
			},
		}, &mockJWTService{})

		req := newJSONRequest(t, http.MethodPost, "/api/auth/register", RegisterRequest{
			Name:     "Alice",
			Email:    "alice@example.com",
			Password: "short",
		})
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mockUserService{}, &mockJWTService{})

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp shared.ErrorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Invalid request format", resp.Message)
	})
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		user := testUser(t)
		handler := NewAuthHandler(&mockUserService{
			authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return user, nil
			},
		}, &mockJWTService{})

		req := newJSONRequest(t, http.MethodPost, "/api/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "s3cret-pass",
		})
		rec := httptest.NewRecorder()
		handler.Login(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown email and wrong password share a message", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mockUserService{
			authenticateFn: func(ctx context.Context, email, password string) (*domain.User, error) {
				return nil, auth.ErrInvalidCredentials
			},
		}, &mockJWTService{})

		for _, body := range []LoginRequest{
			{Email: "nobody@example.com", Password: "s3cret-pass"},
			{Email: "alice@example.com", Password: "wrong-pass"},
		} {
			req := newJSONRequest(t, http.MethodPost, "/api/auth/login", body)
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var resp shared.ErrorResponse
			decodeBody(t, rec, &resp)
			assert.Equal(t, "Invalid credentials", resp.Message)
		}
	})
}

func TestAuthHandlerMe(t *testing.T) {
	t.Parallel()

	user := testUser(t)
	handler := NewAuthHandler(&mockUserService{
		getFn: func(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
			assert.Equal(t, user.ID, userID)
			return user, nil
		},
	}, &mockJWTService{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), user.ID)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User *domain.User `json:"user"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, user.Email, resp.User.Email)
}

func TestAuthHandlerMeWithoutContext(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mockUserService{}, &mockJWTService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&mockUserService{}, &mockJWTService{})

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), uuid.New())
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, "Logged out successfully", resp.Message)
}
