package handler

import (
	"log/slog"
	"net/http"

	editorSvc "website-editor/internal/domain/services/editor"
	"website-editor/internal/httputil"
)

// SubPromptHandler handles revision and code HTTP requests
type SubPromptHandler struct {
	subPromptService editorSvc.SubPromptService
	logger           *slog.Logger
}

// NewSubPromptHandler creates a new subprompt handler
func NewSubPromptHandler(subPromptService editorSvc.SubPromptService, logger *slog.Logger) *SubPromptHandler {
	return &SubPromptHandler{
		subPromptService: subPromptService,
		logger:           logger,
	}
}

// GetCode returns a code payload
// GET /api/codes/{id}
func (h *SubPromptHandler) GetCode(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	code, err := h.subPromptService.GetCode(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, code)
}

// GetSubPrompt returns one revision with its code
// GET /api/subprompts/{id}
func (h *SubPromptHandler) GetSubPrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	sp, err := h.subPromptService.GetSubPrompt(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, sp)
}

// CreateSubPrompt appends a revision to a UI
// POST /api/subprompts
func (h *SubPromptHandler) CreateSubPrompt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req editorSvc.CreateSubPromptRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	if req.UiID != "" {
		uiID, err := parseUUID(req.UiID)
		if err != nil {
			httputil.RespondError(w, http.StatusNotFound, "ui not found")
			return
		}
		req.UiID = uiID
	}

	sp, err := h.subPromptService.CreateSubPrompt(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, sp)
}
