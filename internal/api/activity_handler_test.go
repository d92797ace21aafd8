package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

func TestActivityHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("default limit", func(t *testing.T) {
		t.Parallel()

		ownerID := uuid.New()
		entry, err := domain.NewActivityLog(ownerID, uuid.New(), domain.ActivityActionCreated, "Task created")
		require.NoError(t, err)

		handler := NewActivityHandler(&mockActivityStore{
			listFn: func(ctx context.Context, oid uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error) {
				assert.Equal(t, ownerID, oid)
				assert.Equal(t, store.DefaultActivityLimit, filter.Limit)
				assert.Nil(t, filter.TaskID)
				return []*domain.ActivityLog{entry}, nil
			},
		})

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/activity", nil), ownerID)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Task created")
	})

	t.Run("explicit limit and task filter", func(t *testing.T) {
		t.Parallel()

		taskID := uuid.New()
		handler := NewActivityHandler(&mockActivityStore{
			listFn: func(ctx context.Context, oid uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error) {
				assert.Equal(t, 10, filter.Limit)
				require.NotNil(t, filter.TaskID)
				assert.Equal(t, taskID, *filter.TaskID)
				return nil, nil
			},
		})

		req := withUserID(httptest.NewRequest(http.MethodGet,
			"/api/activity?limit=10&taskId="+taskID.String(), nil), uuid.New())
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"logs":[]`)
	})

	t.Run("unparseable limit falls back to default", func(t *testing.T) {
		t.Parallel()

		handler := NewActivityHandler(&mockActivityStore{
			listFn: func(ctx context.Context, oid uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error) {
				assert.Equal(t, store.DefaultActivityLimit, filter.Limit)
				return nil, nil
			},
		})

		for _, raw := range []string{"abc", "-5", "0"} {
			req := withUserID(httptest.NewRequest(http.MethodGet, "/api/activity?limit="+raw, nil), uuid.New())
			rec := httptest.NewRecorder()
			handler.List(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("malformed taskId", func(t *testing.T) {
		t.Parallel()

		handler := NewActivityHandler(&mockActivityStore{
			listFn: func(ctx context.Context, oid uuid.UUID, filter store.ActivityFilter) ([]*domain.ActivityLog, error) {
				t.Fatal("store must not be called for a malformed taskId")
				return nil, nil
			},
		})

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/activity?taskId=not-a-uuid", nil), uuid.New())
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
