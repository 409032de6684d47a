package editor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"website-editor/internal/cache"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	editorRepo "website-editor/internal/domain/repositories/editor"
	editorSvc "website-editor/internal/domain/services/editor"
)

const homeFeedKey = "feed:home"

// feedService implements the FeedService interface
type feedService struct {
	feedRepo editorRepo.FeedRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

// NewFeedService creates a new feed service; the home feed is cached for cacheTTL
func NewFeedService(
	feedRepo editorRepo.FeedRepository,
	feedCache cache.Cache,
	cacheTTL time.Duration,
	logger *slog.Logger,
) editorSvc.FeedService {
	return &feedService{
		feedRepo: feedRepo,
		cache:    feedCache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// ListUis returns one page of public UIs.
// The time range only narrows the ranked modes; latest always spans all time.
func (s *feedService) ListUis(ctx context.Context, req *editorSvc.ListUisRequest) ([]models.Ui, error) {
	ctx, span := tracer.Start(ctx, "Feed.Service.ListUis", trace.WithAttributes(
		attribute.String("feed.mode", req.Mode),
		attribute.String("feed.time_range", req.TimeRange),
	))
	defer span.End()

	if err := validateListRequest(req); err != nil {
		return nil, recordError(span, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	query := &models.FeedQuery{
		Mode:       models.FeedMode(req.Mode),
		Start:      req.Start,
		Limit:      req.Limit,
		PublicOnly: true,
	}
	query.ApplyDefaults()

	if query.Mode != models.FeedModeLatest {
		if window := models.TimeRange(req.TimeRange).Window(); window > 0 {
			since := s.now().Add(-window)
			query.Since = &since
		}
	}

	uis, err := s.feedRepo.List(ctx, query)
	if err != nil {
		return nil, recordError(span, err)
	}

	return uis, nil
}

// GetHomeFeed returns the recently updated page, served from cache when fresh.
// Cache failures fall through to the database.
func (s *feedService) GetHomeFeed(ctx context.Context) ([]models.Ui, error) {
	ctx, span := tracer.Start(ctx, "Feed.Service.GetHomeFeed")
	defer span.End()

	if data, found, err := s.cache.Get(ctx, homeFeedKey); err != nil {
		s.logger.Warn("home feed cache read failed", "error", err)
	} else if found {
		var uis []models.Ui
		if err := json.Unmarshal(data, &uis); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return uis, nil
		}
		s.logger.Warn("discarding unreadable home feed cache entry")
	}

	span.SetAttributes(attribute.Bool("cache.hit", false))

	uis, err := s.feedRepo.ListRecentlyUpdated(ctx, models.HomeFeedSize, true)
	if err != nil {
		return nil, recordError(span, err)
	}

	data, err := json.Marshal(uis)
	if err != nil {
		s.logger.Warn("home feed encode failed", "error", err)
		return uis, nil
	}
	if err := s.cache.Set(ctx, homeFeedKey, data, s.cacheTTL); err != nil {
		s.logger.Warn("home feed cache write failed", "error", err)
	}

	return uis, nil
}

// GetUserFeed lists a user's own or liked UIs.
// Private UIs appear only when the requester is the owner.
func (s *feedService) GetUserFeed(ctx context.Context, req *editorSvc.UserFeedRequest) ([]models.Ui, error) {
	ctx, span := tracer.Start(ctx, "Feed.Service.GetUserFeed", trace.WithAttributes(
		attribute.String("user.id", req.UserID),
		attribute.String("feed.mode", req.Mode),
	))
	defer span.End()

	if err := validateUserFeedRequest(req); err != nil {
		return nil, recordError(span, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	page := &models.FeedQuery{Start: req.Start, Limit: req.Limit}
	page.ApplyDefaults()

	var uis []models.Ui
	var err error
	switch models.UserFeedMode(req.Mode) {
	case models.UserFeedModeLiked:
		uis, err = s.feedRepo.ListLikedBy(ctx, req.UserID, page.Start, page.Limit)
	default:
		publicOnly := req.RequesterID != req.UserID
		uis, err = s.feedRepo.ListByOwner(ctx, req.UserID, page.Start, page.Limit, publicOnly)
	}
	if err != nil {
		return nil, recordError(span, err)
	}

	return uis, nil
}

// InvalidateHomeFeed drops the cached home feed; failures only delay freshness until the TTL
func (s *feedService) InvalidateHomeFeed(ctx context.Context) {
	if err := s.cache.Delete(ctx, homeFeedKey); err != nil {
		s.logger.Warn("home feed cache invalidation failed", "error", err)
	}
}

// validateListRequest validates a global listing request
func validateListRequest(req *editorSvc.ListUisRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Mode, validation.In(
			string(models.FeedModeLatest),
			string(models.FeedModeMostLiked),
			string(models.FeedModeMostViewed),
		)),
		validation.Field(&req.TimeRange, validation.In(
			string(models.TimeRangeAll),
			string(models.TimeRangeHour),
			string(models.TimeRangeDay),
			string(models.TimeRangeWeek),
			string(models.TimeRangeMonth),
		)),
		validation.Field(&req.Start, validation.Min(0)),
		validation.Field(&req.Limit, validation.Min(0)),
	)
}

// validateUserFeedRequest validates a per-user listing request
func validateUserFeedRequest(req *editorSvc.UserFeedRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Mode, validation.In(
			string(models.UserFeedModeOwn),
			string(models.UserFeedModeLiked),
		)),
		validation.Field(&req.Start, validation.Min(0)),
		validation.Field(&req.Limit, validation.Min(0)),
	)
}
