package handler

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	editorSvc "website-editor/internal/domain/services/editor"
	"website-editor/internal/httputil"
)

// UiHandler handles HTTP requests on a single UI
type UiHandler struct {
	uiService         editorSvc.UiService
	engagementService editorSvc.EngagementService
	logger            *slog.Logger

	// detached view increments still running
	views sync.WaitGroup
}

// NewUiHandler creates a new UI handler
func NewUiHandler(uiService editorSvc.UiService, engagementService editorSvc.EngagementService, logger *slog.Logger) *UiHandler {
	return &UiHandler{
		uiService:         uiService,
		engagementService: engagementService,
		logger:            logger,
	}
}

// updateUiBody is the PATCH body; OptionalString distinguishes absent from null
type updateUiBody struct {
	Img    httputil.OptionalString `json:"img"`
	Prompt httputil.OptionalString `json:"prompt"`
}

// GetUi returns a UI with owner, revisions and the caller's like state
// GET /api/uis/{id}
func (h *UiHandler) GetUi(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	ui, err := h.uiService.GetUiDetail(r.Context(), id, httputil.GetUserID(r))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ui)
}

// ForkUi copies a UI into the caller's account
// POST /api/uis/{id}/fork
func (h *UiHandler) ForkUi(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	forked, err := h.uiService.ForkUi(r.Context(), id, userID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, forked)
}

// DeleteUi removes a UI owned by the caller
// DELETE /api/uis/{id}
func (h *UiHandler) DeleteUi(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.uiService.DeleteUi(r.Context(), id, userID); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// UpdateUi changes the preview image and/or prompt
// PATCH /api/uis/{id}
func (h *UiHandler) UpdateUi(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var body updateUiBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := &editorSvc.UpdateUiRequest{
		Img:    editorSvc.OptionalText{Present: body.Img.Present, Value: body.Img.Value},
		Prompt: editorSvc.OptionalText{Present: body.Prompt.Present, Value: body.Prompt.Value},
	}

	updated, err := h.uiService.UpdateUi(r.Context(), id, userID, req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, updated)
}

// ToggleLike flips the caller's like
// POST /api/uis/{id}/like
func (h *UiHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	liked, err := h.engagementService.ToggleLike(r.Context(), userID, id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// RecordView counts a view without making the caller wait for it.
// Always answers 202.
// POST /api/uis/{id}/view
func (h *UiHandler) RecordView(w http.ResponseWriter, r *http.Request) {
	if id, err := parseUUID(r.PathValue("id")); err == nil {
		ctx := context.WithoutCancel(r.Context())
		h.views.Add(1)
		go func() {
			defer h.views.Done()
			h.engagementService.IncrementView(ctx, id)
		}()
	}

	httputil.RespondAccepted(w)
}

// WaitForViews blocks until in-flight view increments finish or ctx is done.
// Call it after the server has stopped accepting requests.
func (h *UiHandler) WaitForViews(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		h.views.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
