package editor

import (
	"fmt"
	"time"

	"website-editor/internal/domain"
)

// FeedMode selects the ordering of the global UI listing
type FeedMode string

const (
	// FeedModeLatest orders by created_at DESC and ignores the time range
	FeedModeLatest FeedMode = "latest"

	// FeedModeMostLiked orders by likes_count DESC, created_at ASC
	FeedModeMostLiked FeedMode = "most_liked"

	// FeedModeMostViewed orders by view_count DESC, created_at ASC
	FeedModeMostViewed FeedMode = "most_viewed"
)

// TimeRange limits ranked feeds to recently created UIs
type TimeRange string

const (
	TimeRangeAll   TimeRange = "all"
	TimeRangeHour  TimeRange = "1h"
	TimeRangeDay   TimeRange = "24h"
	TimeRangeWeek  TimeRange = "7d"
	TimeRangeMonth TimeRange = "30d"
)

// Window returns the look-back duration; zero means unbounded
func (r TimeRange) Window() time.Duration {
	switch r {
	case TimeRangeHour:
		return time.Hour
	case TimeRangeDay:
		return 24 * time.Hour
	case TimeRangeWeek:
		return 7 * 24 * time.Hour
	case TimeRangeMonth:
		return 30 * 24 * time.Hour
	default:
		return 0
	}
}

// UserFeedMode selects which of a user's UIs are listed
type UserFeedMode string

const (
	UserFeedModeOwn   UserFeedMode = "ownUI"
	UserFeedModeLiked UserFeedMode = "likedUI"
)

// Default feed configuration values
const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 100
	HomeFeedSize     = 12
)

// FeedQuery is the resolved form of a listing request handed to the repository
type FeedQuery struct {
	Mode  FeedMode
	Start int
	Limit int

	// Since filters to created_at >= Since; nil = no lower bound
	Since *time.Time

	// PublicOnly hides non-public UIs
	PublicOnly bool
}

// ApplyDefaults fills in default values and caps the page size
func (q *FeedQuery) ApplyDefaults() {
	if q.Mode == "" {
		q.Mode = FeedModeLatest
	}
	if q.Start < 0 {
		q.Start = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultFeedLimit
	}
	if q.Limit > MaxFeedLimit {
		q.Limit = MaxFeedLimit
	}
}

// Validate checks the query is one the repository can run
func (q *FeedQuery) Validate() error {
	switch q.Mode {
	case FeedModeLatest, FeedModeMostLiked, FeedModeMostViewed:
	default:
		return fmt.Errorf("%w: unknown feed mode %q", domain.ErrValidation, q.Mode)
	}
	if q.Start < 0 || q.Limit <= 0 || q.Limit > MaxFeedLimit {
		return fmt.Errorf("%w: page start=%d limit=%d", domain.ErrValidation, q.Start, q.Limit)
	}
	return nil
}
