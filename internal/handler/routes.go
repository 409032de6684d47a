package handler

import "net/http"

// Handlers groups everything the router dispatches to
type Handlers struct {
	SubPrompts *SubPromptHandler
	Uis        *UiHandler
	Feed       *FeedHandler
	Catalog    *CatalogHandler
}

// NewRouter registers every route (Go 1.22+ method and wildcard patterns)
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)

	// Revisions and code
	mux.HandleFunc("GET /api/codes/{id}", h.SubPrompts.GetCode)
	mux.HandleFunc("GET /api/subprompts/{id}", h.SubPrompts.GetSubPrompt)
	mux.HandleFunc("POST /api/subprompts", h.SubPrompts.CreateSubPrompt)

	// UI aggregate
	mux.HandleFunc("GET /api/uis/{id}", h.Uis.GetUi)
	mux.HandleFunc("PATCH /api/uis/{id}", h.Uis.UpdateUi)
	mux.HandleFunc("DELETE /api/uis/{id}", h.Uis.DeleteUi)
	mux.HandleFunc("POST /api/uis/{id}/fork", h.Uis.ForkUi)
	mux.HandleFunc("POST /api/uis/{id}/like", h.Uis.ToggleLike)
	mux.HandleFunc("POST /api/uis/{id}/view", h.Uis.RecordView)

	// Feeds
	mux.HandleFunc("GET /api/uis", h.Feed.ListUis)
	mux.HandleFunc("GET /api/feed/home", h.Feed.GetHomeFeed)
	mux.HandleFunc("GET /api/users/{id}/uis", h.Feed.GetUserFeed)

	mux.HandleFunc("GET /api/catalog", h.Catalog.GetCatalog)

	return mux
}
