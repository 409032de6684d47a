package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"website-editor/internal/domain"
	"website-editor/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// A 500 is logged with the route and ids; the client gets a generic message.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var conflictErr *domain.ConflictError

	switch status := domain.StatusCode(err); {
	case errors.As(err, &conflictErr):
		httputil.RespondErrorWithExtras(w, http.StatusConflict, conflictErr.Error(), map[string]interface{}{
			"resource_type": conflictErr.ResourceType,
			"resource_id":   conflictErr.ResourceID,
		})
	case status == http.StatusInternalServerError:
		logger.Error("request failed",
			"operation", r.Pattern,
			"id", r.PathValue("id"),
			"user_id", httputil.GetUserID(r),
			"error", err,
		)
		httputil.RespondError(w, status, "internal server error")
	default:
		httputil.RespondError(w, status, err.Error())
	}
}

// pathID returns the named path value when it is a UUID.
// Malformed ids cannot name a stored row, so they are answered with 404.
func pathID(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	id, err := parseUUID(r.PathValue(name))
	if err != nil {
		httputil.RespondError(w, http.StatusNotFound, "resource not found")
		return "", false
	}
	return id, true
}

// parseUUID validates and canonicalizes a UUID string
func parseUUID(raw string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// requireUser returns the authenticated user's ID or answers 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}
