package editor

import "context"

// EngagementService defines like and view tracking
type EngagementService interface {
	// ToggleLike flips the user's like on a UI and returns the new state
	ToggleLike(ctx context.Context, userID, uiID string) (bool, error)

	// IncrementView records a view. Best effort: failures are logged, never returned
	IncrementView(ctx context.Context, uiID string)
}
