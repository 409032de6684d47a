package editor

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"website-editor/internal/domain"
	editorRepo "website-editor/internal/domain/repositories/editor"
	editorSvc "website-editor/internal/domain/services/editor"
)

// engagementService implements the EngagementService interface
type engagementService struct {
	engagementRepo editorRepo.EngagementRepository
	viewTimeout    time.Duration
	logger         *slog.Logger
}

// NewEngagementService creates a new engagement service.
// viewTimeout bounds each detached view increment.
func NewEngagementService(
	engagementRepo editorRepo.EngagementRepository,
	viewTimeout time.Duration,
	logger *slog.Logger,
) editorSvc.EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		viewTimeout:    viewTimeout,
		logger:         logger,
	}
}

// ToggleLike flips the like and returns the resulting state
func (s *engagementService) ToggleLike(ctx context.Context, userID, uiID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "Engagement.Service.ToggleLike", trace.WithAttributes(attribute.String("ui.id", uiID)))
	defer span.End()

	if userID == "" {
		return false, recordError(span, &domain.UnauthorizedError{Message: "authentication required"})
	}

	liked, err := s.engagementRepo.ToggleLike(ctx, userID, uiID)
	if err != nil {
		return false, recordError(span, err)
	}

	span.SetAttributes(attribute.Bool("like.liked", liked))
	s.logger.Debug("like toggled",
		"ui_id", uiID,
		"user_id", userID,
		"liked", liked,
	)

	return liked, nil
}

// IncrementView adds one view. Callers run it detached from the request;
// errors are logged and dropped.
func (s *engagementService) IncrementView(ctx context.Context, uiID string) {
	ctx, span := tracer.Start(ctx, "Engagement.Service.IncrementView", trace.WithAttributes(attribute.String("ui.id", uiID)))
	defer span.End()

	if s.viewTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.viewTimeout)
		defer cancel()
	}

	if err := s.engagementRepo.IncrementViewCount(ctx, uiID); err != nil {
		recordError(span, err)
		s.logger.Warn("view increment failed",
			"ui_id", uiID,
			"error", err,
		)
	}
}
