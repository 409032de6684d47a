package editor

import "context"

// EngagementRepository defines the counter mutations on a UI
type EngagementRepository interface {
	// ToggleLike removes the (userID, uiID) like if present, otherwise adds it,
	// adjusting likes_count in the same statement. Returns the resulting state.
	// Returns domain.ErrNotFound if the UI does not exist
	ToggleLike(ctx context.Context, userID, uiID string) (liked bool, err error)

	// HasLiked reports whether the user currently likes the UI
	HasLiked(ctx context.Context, userID, uiID string) (bool, error)

	// IncrementViewCount atomically adds one to view_count
	// Returns domain.ErrNotFound if the UI does not exist
	IncrementViewCount(ctx context.Context, uiID string) error
}
