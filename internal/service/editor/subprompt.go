package editor

import (
	"context"
	"errors"
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
	"website-editor/internal/service/revision"
)

// ModelCatalog reports whether a model id may be recorded on a revision
type ModelCatalog interface {
	HasModel(id string) bool
}

// subPromptService implements the SubPromptService interface
type subPromptService struct {
	uiRepo    editorRepo.UiRepository
	subRepo   editorRepo.SubPromptRepository
	txManager repositories.TransactionManager
	catalog   ModelCatalog
	logger    *slog.Logger
	now       func() time.Time
}

// NewSubPromptService creates a new subprompt service
func NewSubPromptService(
	uiRepo editorRepo.UiRepository,
	subRepo editorRepo.SubPromptRepository,
	txManager repositories.TransactionManager,
	catalog ModelCatalog,
	logger *slog.Logger,
) editorSvc.SubPromptService {
	return &subPromptService{
		uiRepo:    uiRepo,
		subRepo:   subRepo,
		txManager: txManager,
		catalog:   catalog,
		logger:    logger,
		now:       time.Now,
	}
}

// GetSubPrompt retrieves a revision with its code
func (s *subPromptService) GetSubPrompt(ctx context.Context, id string) (*models.SubPrompt, error) {
	ctx, span := tracer.Start(ctx, "SubPrompt.Service.GetSubPrompt", trace.WithAttributes(attribute.String("subprompt.id", id)))
	defer span.End()

	sp, err := s.subRepo.GetByID(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	return sp, nil
}

// GetCode retrieves a code payload
func (s *subPromptService) GetCode(ctx context.Context, id string) (*models.Code, error) {
	ctx, span := tracer.Start(ctx, "SubPrompt.Service.GetCode", trace.WithAttributes(attribute.String("code.id", id)))
	defer span.End()

	code, err := s.subRepo.GetCode(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	return code, nil
}

// CreateSubPrompt stores a new revision under req.ParentSubID.
// A sub_id collision re-reads the siblings and allocates again; named anchors
// always allocate the same id so their conflicts are returned immediately.
func (s *subPromptService) CreateSubPrompt(ctx context.Context, req *editorSvc.CreateSubPromptRequest) (*models.SubPrompt, error) {
	ctx, span := tracer.Start(ctx, "SubPrompt.Service.CreateSubPrompt", trace.WithAttributes(
		attribute.String("ui.id", req.UiID),
		attribute.String("subprompt.parent_sub_id", req.ParentSubID),
	))
	defer span.End()

	if req.UserID == "" {
		return nil, recordError(span, &domain.UnauthorizedError{Message: "authentication required"})
	}

	if err := s.validateCreateRequest(req); err != nil {
		return nil, recordError(span, fmt.Errorf("%w: %v", domain.ErrValidation, err))
	}

	for attempt := 1; ; attempt++ {
		sp, err := s.createOnce(ctx, req)
		if err == nil {
			span.SetAttributes(attribute.String("subprompt.sub_id", sp.SubID), attribute.Int("attempts", attempt))
			s.logger.Info("subprompt created",
				"id", sp.ID,
				"ui_id", sp.UiID,
				"sub_id", sp.SubID,
				"parent_sub_id", req.ParentSubID,
				"user_id", req.UserID,
			)
			return sp, nil
		}

		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) || revision.IsNamed(req.ParentSubID) || attempt >= config.MaxAllocationAttempts {
			return nil, recordError(span, err)
		}

		s.logger.Warn("sub_id collision, reallocating",
			"ui_id", req.UiID,
			"sub_id", conflict.ResourceID,
			"attempt", attempt,
		)
	}
}

// createOnce allocates and inserts in one transaction under the UI row lock
func (s *subPromptService) createOnce(ctx context.Context, req *editorSvc.CreateSubPromptRequest) (*models.SubPrompt, error) {
	var created *models.SubPrompt

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.uiRepo.LockForUpdate(txCtx, req.UiID); err != nil {
			return err
		}

		existing, err := s.subRepo.ListSubIDs(txCtx, req.UiID)
		if err != nil {
			return err
		}

		sp := &models.SubPrompt{
			UiID:          req.UiID,
			SubID:         revision.NextID(req.ParentSubID, existing),
			SubPromptText: req.SubPrompt,
			ModelID:       req.ModelID,
			CreatedAt:     s.now(),
			Code:          &models.Code{Code: req.Code},
		}

		if err := s.subRepo.CreateWithCode(txCtx, sp); err != nil {
			return err
		}

		created = sp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// validateCreateRequest validates a create subprompt request
func (s *subPromptService) validateCreateRequest(req *editorSvc.CreateSubPromptRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UiID, validation.Required),
		validation.Field(&req.SubPrompt,
			validation.Required,
			validation.Length(1, config.MaxPromptLength),
		),
		validation.Field(&req.ParentSubID,
			validation.Required,
			validation.Length(1, config.MaxSubIDLength),
		),
		validation.Field(&req.Code,
			validation.Required,
			validation.Length(1, config.MaxCodeLength),
		),
		validation.Field(&req.ModelID, validation.By(s.validateModelID)),
	)
}

// validateModelID accepts a missing model or one listed in the catalog
func (s *subPromptService) validateModelID(value interface{}) error {
	modelID, ok := value.(*string)
	if !ok {
		return fmt.Errorf("model id must be a string")
	}
	if modelID == nil {
		return nil
	}
	if !s.catalog.HasModel(*modelID) {
		return fmt.Errorf("unknown model %q", *modelID)
	}
	return nil
}
