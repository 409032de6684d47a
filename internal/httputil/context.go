package httputil

import (
	"context"
	"net/http"
)

type contextKey struct{}

// WithUserID returns r carrying the authenticated user's ID
func WithUserID(r *http.Request, userID string) *http.Request {
	return r.WithContext(ContextWithUserID(r.Context(), userID))
}

// ContextWithUserID stores userID in ctx
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// GetUserID returns the authenticated user's ID, or "" for anonymous requests
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(contextKey{}).(string)
	return userID
}
