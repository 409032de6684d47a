package editor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"website-editor/internal/config"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	"website-editor/internal/domain/repositories"
	editorRepo "website-editor/internal/domain/repositories/editor"
	editorSvc "website-editor/internal/domain/services/editor"
)

// HomeFeedInvalidator drops cached listings after a UI changes
type HomeFeedInvalidator interface {
	InvalidateHomeFeed(ctx context.Context)
}

// uiService implements the UiService interface
type uiService struct {
	uiRepo         editorRepo.UiRepository
	subRepo        editorRepo.SubPromptRepository
	engagementRepo editorRepo.EngagementRepository
	txManager      repositories.TransactionManager
	feed           HomeFeedInvalidator
	logger         *slog.Logger
	now            func() time.Time
}

// NewUiService creates a new UI service
func NewUiService(
	uiRepo editorRepo.UiRepository,
	subRepo editorRepo.SubPromptRepository,
	engagementRepo editorRepo.EngagementRepository,
	txManager repositories.TransactionManager,
	feed HomeFeedInvalidator,
	logger *slog.Logger,
) editorSvc.UiService {
	return &uiService{
		uiRepo:         uiRepo,
		subRepo:        subRepo,
		engagementRepo: engagementRepo,
		txManager:      txManager,
		feed:           feed,
		logger:         logger,
		now:            time.Now,
	}
}

// GetUiDetail retrieves a UI with owner, revisions and the requester's like state.
// Private UIs are reported as missing to everyone but their owner.
func (s *uiService) GetUiDetail(ctx context.Context, id, requesterID string) (*models.Ui, error) {
	ctx, span := tracer.Start(ctx, "Ui.Service.GetUiDetail", trace.WithAttributes(attribute.String("ui.id", id)))
	defer span.End()

	ui, err := s.uiRepo.GetByID(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}

	if !ui.Public && ui.OwnerID != requesterID {
		return nil, recordError(span, fmt.Errorf("ui %s: %w", id, domain.ErrNotFound))
	}

	ui.SubPrompts, err = s.subRepo.ListByUiID(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}

	if requesterID != "" {
		liked, err := s.engagementRepo.HasLiked(ctx, requesterID, id)
		if err != nil {
			return nil, recordError(span, err)
		}
		ui.Liked = &liked
	}

	return ui, nil
}

// ForkUi copies the source UI and every revision into a new public UI owned
// by the requester. Counters start at zero and sub_ids are kept verbatim.
func (s *uiService) ForkUi(ctx context.Context, sourceID, requesterID string) (*models.Ui, error) {
	ctx, span := tracer.Start(ctx, "Ui.Service.ForkUi", trace.WithAttributes(attribute.String("ui.source_id", sourceID)))
	defer span.End()

	if requesterID == "" {
		return nil, recordError(span, &domain.UnauthorizedError{Message: "authentication required"})
	}

	var forked *models.Ui
	var copied int

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		source, err := s.uiRepo.GetByID(txCtx, sourceID)
		if err != nil {
			return err
		}

		if source.OwnerID == requesterID {
			return &domain.ForbiddenError{Message: "cannot fork your own ui"}
		}
		if !source.Public {
			return fmt.Errorf("ui %s: %w", sourceID, domain.ErrNotFound)
		}

		now := s.now()
		ui := &models.Ui{
			OwnerID:      requesterID,
			UiType:       source.UiType,
			Prompt:       source.Prompt,
			Public:       true,
			PreviewImage: source.PreviewImage,
			ForkedFrom:   &source.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.uiRepo.Create(txCtx, ui); err != nil {
			return err
		}

		copied, err = s.subRepo.CopyTree(txCtx, source.ID, ui.ID)
		if err != nil {
			return err
		}

		// Reload so the response carries the owner profile and stored revisions
		forked, err = s.uiRepo.GetByID(txCtx, ui.ID)
		if err != nil {
			return err
		}
		forked.SubPrompts, err = s.subRepo.ListByUiID(txCtx, ui.ID)
		return err
	})
	if err != nil {
		return nil, recordError(span, err)
	}

	s.feed.InvalidateHomeFeed(ctx)

	s.logger.Info("ui forked",
		"id", forked.ID,
		"source_id", sourceID,
		"user_id", requesterID,
		"revisions", copied,
	)

	return forked, nil
}

// DeleteUi removes a UI with its revisions and likes
func (s *uiService) DeleteUi(ctx context.Context, id, requesterID string) error {
	ctx, span := tracer.Start(ctx, "Ui.Service.DeleteUi", trace.WithAttributes(attribute.String("ui.id", id)))
	defer span.End()

	if requesterID == "" {
		return recordError(span, &domain.UnauthorizedError{Message: "authentication required"})
	}

	if err := s.authorizeOwner(ctx, id, requesterID); err != nil {
		return recordError(span, err)
	}

	if err := s.uiRepo.Delete(ctx, id); err != nil {
		return recordError(span, err)
	}

	s.feed.InvalidateHomeFeed(ctx)

	s.logger.Info("ui deleted",
		"id", id,
		"user_id", requesterID,
	)

	return nil
}

// UpdateUi writes the present fields and bumps updated_at
func (s *uiService) UpdateUi(ctx context.Context, id, requesterID string, req *editorSvc.UpdateUiRequest) (*editorSvc.UpdatedUi, error) {
	ctx, span := tracer.Start(ctx, "Ui.Service.UpdateUi", trace.WithAttributes(attribute.String("ui.id", id)))
	defer span.End()

	if requesterID == "" {
		return nil, recordError(span, &domain.UnauthorizedError{Message: "authentication required"})
	}

	if err := validateUpdateRequest(req); err != nil {
		return nil, recordError(span, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	if err := s.authorizeOwner(ctx, id, requesterID); err != nil {
		return nil, recordError(span, err)
	}

	update := &models.UiUpdate{
		PreviewImage: req.Img.Value,
		Prompt:       req.Prompt.Value,
		UpdatedAt:    s.now(),
	}

	ui, err := s.uiRepo.Update(ctx, id, update)
	if err != nil {
		return nil, recordError(span, err)
	}

	s.feed.InvalidateHomeFeed(ctx)

	s.logger.Info("ui updated",
		"id", id,
		"user_id", requesterID,
		"img", req.Img.Present,
		"prompt", req.Prompt.Present,
	)

	result := &editorSvc.UpdatedUi{ID: ui.ID, UpdatedAt: ui.UpdatedAt}
	if req.Img.Present {
		result.Img = &ui.PreviewImage
	}
	if req.Prompt.Present {
		result.Prompt = &ui.Prompt
	}
	return result, nil
}

// authorizeOwner returns NotFound for a missing UI and Forbidden for a non-owner
func (s *uiService) authorizeOwner(ctx context.Context, id, requesterID string) error {
	ui, err := s.uiRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ui.OwnerID != requesterID {
		return &domain.ForbiddenError{Message: "only the owner can modify this ui"}
	}
	return nil
}

// validateUpdateRequest requires at least one field and rejects explicit nulls
func validateUpdateRequest(req *editorSvc.UpdateUiRequest) error {
	if !req.Img.Present && !req.Prompt.Present {
		return fmt.Errorf("at least one of img or prompt is required")
	}

	if req.Img.Present {
		if req.Img.Value == nil {
			return fmt.Errorf("img cannot be null")
		}
		if err := validation.Validate(*req.Img.Value, validation.Length(0, config.MaxPreviewImageLength)); err != nil {
			return fmt.Errorf("img: %w", err)
		}
	}

	if req.Prompt.Present {
		if req.Prompt.Value == nil {
			return fmt.Errorf("prompt cannot be null")
		}
		if err := validation.Validate(*req.Prompt.Value,
			validation.Required,
			validation.Length(1, config.MaxPromptLength),
		); err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
	}

	return nil
}
