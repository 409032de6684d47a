package handler

import (
	"net/http"
	"time"

	"website-editor/internal/catalog"
	"website-editor/internal/httputil"
)

// CatalogHandler serves the allowed ui types and models
type CatalogHandler struct {
	registry *catalog.Registry
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(registry *catalog.Registry) *CatalogHandler {
	return &CatalogHandler{registry: registry}
}

// GetCatalog returns the catalog in file order
// GET /api/catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, h.registry.Catalog())
}

// HealthCheck is a simple health check endpoint
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
