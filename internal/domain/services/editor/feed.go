package editor

import (
	"context"

	models "website-editor/internal/domain/models/editor"
)

// ListUisRequest is the global feed query as received from callers
type ListUisRequest struct {
	Mode      string
	Start     int
	Limit     int
	TimeRange string
}

// UserFeedRequest lists one user's own or liked UIs
type UserFeedRequest struct {
	UserID      string
	RequesterID string // empty for anonymous callers
	Mode        string
	Start       int
	Limit       int
}

// FeedService defines the read-only listings
type FeedService interface {
	// ListUis returns a page of public UIs in the requested order
	ListUis(ctx context.Context, req *ListUisRequest) ([]models.Ui, error)

	// GetHomeFeed returns the fixed "recently updated" page
	GetHomeFeed(ctx context.Context) ([]models.Ui, error)

	// GetUserFeed returns a page of the user's own or liked UIs
	GetUserFeed(ctx context.Context, req *UserFeedRequest) ([]models.Ui, error)

	// InvalidateHomeFeed drops the cached home feed
	InvalidateHomeFeed(ctx context.Context)
}
