package api

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// ActivityHandler serves the activity feed.
type ActivityHandler struct {
	activityStore store.ActivityStore
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activityStore store.ActivityStore) *ActivityHandler {
	return &ActivityHandler{activityStore: activityStore}
}

// List handles GET /api/activity. Logs come back newest first, optionally
// filtered to one task. An absent or unparseable limit falls back to the
// default.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	filter := store.ActivityFilter{Limit: store.DefaultActivityLimit}

	if raw := r.URL.Query().Get("taskId"); raw != "" {
		taskID, err := uuid.Parse(raw)
		if err != nil {
			HandleAPIError(w, r,
				domain.NewValidationError("taskId", "has invalid format", domain.ErrInvalidID), "")
			return
		}
		filter.TaskID = &taskID
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	logs, err := h.activityStore.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list activity")
		return
	}
	if logs == nil {
		logs = []*domain.ActivityLog{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ActivityListResponse{Logs: logs})
}
