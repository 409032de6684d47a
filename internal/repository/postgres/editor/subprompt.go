package editor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	editorRepo "website-editor/internal/domain/repositories/editor"
	"website-editor/internal/repository/postgres"
)

// PostgresSubPromptRepository implements the SubPromptRepository interface
type PostgresSubPromptRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewSubPromptRepository creates a new subprompt repository
func NewSubPromptRepository(config *postgres.RepositoryConfig) editorRepo.SubPromptRepository {
	return &PostgresSubPromptRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// GetByID retrieves a subprompt joined with its code
func (r *PostgresSubPromptRepository) GetByID(ctx context.Context, id string) (*models.SubPrompt, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		JOIN %s c ON c.subprompt_id = s.id
		WHERE s.id = $1
	`, subPromptColumns, r.tables.SubPrompts, r.tables.Codes)

	executor := postgres.GetExecutor(ctx, r.pool)
	sp, err := scanSubPrompt(executor.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("subprompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get subprompt: %w", err)
	}

	return sp, nil
}

// ListByUiID retrieves the whole revision tree of a UI
func (r *PostgresSubPromptRepository) ListByUiID(ctx context.Context, uiID string) ([]models.SubPrompt, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s s
		JOIN %s c ON c.subprompt_id = s.id
		WHERE s.ui_id = $1
		ORDER BY s.created_at ASC, s.sub_id ASC
	`, subPromptColumns, r.tables.SubPrompts, r.tables.Codes)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, uiID)
	if err != nil {
		return nil, fmt.Errorf("list subprompts: %w", err)
	}
	defer rows.Close()

	subPrompts := []models.SubPrompt{}
	for rows.Next() {
		sp, err := scanSubPrompt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subprompt: %w", err)
		}
		subPrompts = append(subPrompts, *sp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subprompts: %w", err)
	}

	return subPrompts, nil
}

// ListSubIDs returns the sub_ids used within a UI
func (r *PostgresSubPromptRepository) ListSubIDs(ctx context.Context, uiID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT sub_id FROM %s WHERE ui_id = $1`, r.tables.SubPrompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, uiID)
	if err != nil {
		return nil, fmt.Errorf("list sub ids: %w", err)
	}
	defer rows.Close()

	subIDs := []string{}
	for rows.Next() {
		var subID string
		if err := rows.Scan(&subID); err != nil {
			return nil, fmt.Errorf("scan sub id: %w", err)
		}
		subIDs = append(subIDs, subID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sub ids: %w", err)
	}

	return subIDs, nil
}

// CreateWithCode inserts the subprompt row and then its code row
func (r *PostgresSubPromptRepository) CreateWithCode(ctx context.Context, sp *models.SubPrompt) error {
	if sp.Code == nil {
		return fmt.Errorf("%w: subprompt requires code", domain.ErrValidation)
	}

	spQuery := fmt.Sprintf(`
		INSERT INTO %s (ui_id, sub_id, sub_prompt, model_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, r.tables.SubPrompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, spQuery,
		sp.UiID,
		sp.SubID,
		sp.SubPromptText,
		sp.ModelID,
		sp.CreatedAt,
	).Scan(&sp.ID, &sp.CreatedAt)

	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("sub_id '%s' already exists in ui %s", sp.SubID, sp.UiID),
				ResourceType: "subprompt",
				ResourceID:   sp.SubID,
			}
		}
		if postgres.IsPgForeignKeyError(err) {
			return fmt.Errorf("ui %s: %w", sp.UiID, domain.ErrNotFound)
		}
		return fmt.Errorf("create subprompt: %w", err)
	}

	codeQuery := fmt.Sprintf(`
		INSERT INTO %s (subprompt_id, code)
		VALUES ($1, $2)
		RETURNING id
	`, r.tables.Codes)

	if err := executor.QueryRow(ctx, codeQuery, sp.ID, sp.Code.Code).Scan(&sp.Code.ID); err != nil {
		return fmt.Errorf("create code: %w", err)
	}
	sp.Code.SubPromptID = sp.ID

	r.logger.Debug("subprompt stored",
		"id", sp.ID,
		"ui_id", sp.UiID,
		"sub_id", sp.SubID,
		"code_bytes", len(sp.Code.Code),
	)

	return nil
}

// CopyTree duplicates a UI's revisions into another UI with two set-based
// statements; codes are matched to the new rows through the unique (ui_id, sub_id)
func (r *PostgresSubPromptRepository) CopyTree(ctx context.Context, sourceUiID, targetUiID string) (int, error) {
	spQuery := fmt.Sprintf(`
		INSERT INTO %[1]s (ui_id, sub_id, sub_prompt, model_id, created_at)
		SELECT $2, s.sub_id, s.sub_prompt, s.model_id, s.created_at
		FROM %[1]s s
		WHERE s.ui_id = $1
	`, r.tables.SubPrompts)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, spQuery, sourceUiID, targetUiID)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return 0, &domain.ConflictError{
				Message:      fmt.Sprintf("ui %s already has revisions", targetUiID),
				ResourceType: "subprompt",
				ResourceID:   targetUiID,
			}
		}
		return 0, fmt.Errorf("copy subprompts: %w", err)
	}
	copied := int(result.RowsAffected())

	codeQuery := fmt.Sprintf(`
		INSERT INTO %[2]s (subprompt_id, code)
		SELECT dst.id, c.code
		FROM %[1]s src
		JOIN %[2]s c ON c.subprompt_id = src.id
		JOIN %[1]s dst ON dst.ui_id = $2 AND dst.sub_id = src.sub_id
		WHERE src.ui_id = $1
	`, r.tables.SubPrompts, r.tables.Codes)

	result, err = executor.Exec(ctx, codeQuery, sourceUiID, targetUiID)
	if err != nil {
		return 0, fmt.Errorf("copy codes: %w", err)
	}

	if int(result.RowsAffected()) != copied {
		return 0, fmt.Errorf("copy tree: %d subprompts but %d codes", copied, result.RowsAffected())
	}

	return copied, nil
}

// GetCode retrieves a code payload by ID
func (r *PostgresSubPromptRepository) GetCode(ctx context.Context, id string) (*models.Code, error) {
	query := fmt.Sprintf(`
		SELECT id, subprompt_id, code
		FROM %s
		WHERE id = $1
	`, r.tables.Codes)

	var code models.Code
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&code.ID, &code.SubPromptID, &code.Code)
	if err != nil {
		if postgres.IsPgNoRowsError(err) || postgres.IsPgInvalidInputError(err) {
			return nil, fmt.Errorf("code %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get code: %w", err)
	}

	return &code, nil
}
