package handler

import (
	"log/slog"
	"net/http"

	models "website-editor/internal/domain/models/editor"
	editorSvc "website-editor/internal/domain/services/editor"
	"website-editor/internal/httputil"
)

// FeedHandler handles listing HTTP requests
type FeedHandler struct {
	feedService editorSvc.FeedService
	logger      *slog.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feedService editorSvc.FeedService, logger *slog.Logger) *FeedHandler {
	return &FeedHandler{
		feedService: feedService,
		logger:      logger,
	}
}

// feedResponse wraps every listing
type feedResponse struct {
	Uis []models.Ui `json:"uis"`
}

// ListUis returns a page of the global feed
// GET /api/uis?mode=&start=&limit=&timeRange=
func (h *FeedHandler) ListUis(w http.ResponseWriter, r *http.Request) {
	start, limit, ok := parsePage(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	uis, err := h.feedService.ListUis(r.Context(), &editorSvc.ListUisRequest{
		Mode:      query.Get("mode"),
		Start:     start,
		Limit:     limit,
		TimeRange: query.Get("timeRange"),
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feedResponse{Uis: uis})
}

// GetHomeFeed returns the most recently updated UIs
// GET /api/feed/home
func (h *FeedHandler) GetHomeFeed(w http.ResponseWriter, r *http.Request) {
	uis, err := h.feedService.GetHomeFeed(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feedResponse{Uis: uis})
}

// GetUserFeed returns a user's own or liked UIs
// GET /api/users/{id}/uis?mode=ownUI|likedUI&start=&limit=
func (h *FeedHandler) GetUserFeed(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUID(r.PathValue("id"))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	start, limit, ok := parsePage(w, r)
	if !ok {
		return
	}

	uis, err := h.feedService.GetUserFeed(r.Context(), &editorSvc.UserFeedRequest{
		UserID:      userID,
		RequesterID: httputil.GetUserID(r),
		Mode:        r.URL.Query().Get("mode"),
		Start:       start,
		Limit:       limit,
	})
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, feedResponse{Uis: uis})
}

// parsePage reads start and limit, answering 400 for non-integers
func parsePage(w http.ResponseWriter, r *http.Request) (start, limit int, ok bool) {
	start, err := httputil.QueryInt(r, "start", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	limit, err = httputil.QueryInt(r, "limit", 0)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return start, limit, true
}
