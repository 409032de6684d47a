package editor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	editorRepo "website-editor/internal/domain/repositories/editor"
	"website-editor/internal/repository/postgres"
)

// PostgresUiRepository implements the UiRepository interface
type PostgresUiRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewUiRepository creates a new UI repository
func NewUiRepository(config *postgres.RepositoryConfig) editorRepo.UiRepository {
	return &PostgresUiRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new UI row
func (r *PostgresUiRepository) Create(ctx context.Context, ui *models.Ui) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (
			owner_id, ui_type, prompt, public, preview_image,
			view_count, likes_count, forked_from, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, r.tables.Uis)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		ui.OwnerID,
		ui.UiType,
		ui.Prompt,
		ui.Public,
		ui.PreviewImage,
		int64(ui.ViewCount),
		int64(ui.LikesCount),
		ui.ForkedFrom,
		ui.CreatedAt,
		ui.UpdatedAt,
	).Scan(&ui.ID, &ui.CreatedAt, &ui.UpdatedAt)

	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("forked_from ui: %w", domain.ErrNotFound)
		}
		if postgres.IsPgInvalidInputError(err) {
			return fmt.Errorf("create ui: %w", domain.ErrValidation)
		}
		return fmt.Errorf("create ui: %w", err)
	}

	return nil
}

// GetByID retrieves a UI with owner info
func (r *PostgresUiRepository) GetByID(ctx context.Context, id string) (*models.Ui, error) {
	query := uiSelect(r.tables) + `
		WHERE u.id = $1
	`

	executor := postgres.GetExecutor(ctx, r.pool)
	ui, err := scanUiWithOwner(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get ui: %w", err)
	}

	return ui, nil
}

// Update writes the non-nil fields and bumps updated_at
func (r *PostgresUiRepository) Update(ctx context.Context, id string, update *models.UiUpdate) (*models.Ui, error) {
	query := fmt.Sprintf(`
		UPDATE %s u
		SET preview_image = COALESCE($2, u.preview_image),
			prompt = COALESCE($3, u.prompt),
			updated_at = $4
		WHERE u.id = $1
		RETURNING %s
	`, r.tables.Uis, uiColumns)

	var ui models.Ui
	executor := postgres.GetExecutor(ctx, r.pool)
	err := scanUi(executor.QueryRow(ctx, query, id, update.PreviewImage, update.Prompt, update.UpdatedAt), &ui)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update ui: %w", err)
	}

	return &ui, nil
}

// Delete removes the UI; the schema cascades to subprompts, codes and likes
func (r *PostgresUiRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Uis)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("delete ui: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// LockForUpdate locks the UI row until the surrounding transaction ends
func (r *PostgresUiRepository) LockForUpdate(ctx context.Context, id string) error {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, r.tables.Uis)

	var lockedID string
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, id).Scan(&lockedID); err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("lock ui: %w", err)
	}

	return nil
}
