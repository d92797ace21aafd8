package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
)

// TemplateHandler handles task template API requests, including
// instantiating a task from a template.
type TemplateHandler struct {
	templateService service.TemplateService
	taskService     service.TaskService
	logger          *slog.Logger
}

// NewTemplateHandler creates a new TemplateHandler with the given dependencies.
func NewTemplateHandler(
	templateService service.TemplateService,
	taskService service.TaskService,
	log *slog.Logger,
) *TemplateHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TemplateHandler{
		templateService: templateService,
		taskService:     taskService,
		logger:          log.With(slog.String("component", "template_handler")),
	}
}

// List handles GET /api/templates.
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	templates, err := h.templateService.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list templates")
		return
	}
	if templates == nil {
		templates = []*domain.TaskTemplate{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TemplateListResponse{Templates: templates})
}

// Create handles POST /api/templates.
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateTemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err), err)
		return
	}

	tmpl, err := h.templateService.Create(r.Context(), userID, service.CreateTemplateInput{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TemplateResponse{Template: tmpl})
}

// Get handles GET /api/templates/{id}.
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, templateID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	tmpl, err := h.templateService.Get(r.Context(), userID, templateID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TemplateResponse{Template: tmpl})
}

// Update handles PUT /api/templates/{id}.
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, templateID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateTemplateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err), err)
		return
	}

	tmpl, err := h.templateService.Update(r.Context(), userID, templateID, service.UpdateTemplateInput{
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TemplateResponse{Template: tmpl})
}

// Delete handles DELETE /api/templates/{id}. Tasks created from the
// template keep their reference.
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, templateID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.templateService.Delete(r.Context(), userID, templateID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Template deleted"})
}

// CreateTask handles POST /api/templates/{id}/create-task.
func (h *TemplateHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, templateID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	task, err := h.taskService.CreateFromTemplate(r.Context(), userID, templateID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, TaskResponse{Task: task})
}
