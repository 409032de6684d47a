package editor

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"website-editor/internal/domain"
	editorRepo "website-editor/internal/domain/repositories/editor"
	"website-editor/internal/repository/postgres"
)

// PostgresEngagementRepository implements the EngagementRepository interface
type PostgresEngagementRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(config *postgres.RepositoryConfig) editorRepo.EngagementRepository {
	return &PostgresEngagementRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// ToggleLike flips the like in one statement so the like row and likes_count
// never disagree. A concurrent insert by the same user hits the unique
// constraint and is reported as already liked.
func (r *PostgresEngagementRepository) ToggleLike(ctx context.Context, userID, uiID string) (bool, error) {
	query := fmt.Sprintf(`
		WITH target AS (
			SELECT id FROM %[1]s WHERE id = $2
		),
		removed AS (
			DELETE FROM %[2]s
			WHERE user_id = $1 AND ui_id = (SELECT id FROM target)
			RETURNING id
		),
		added AS (
			INSERT INTO %[2]s (user_id, ui_id)
			SELECT $1::uuid, t.id FROM target t
			WHERE NOT EXISTS (SELECT 1 FROM removed)
			ON CONFLICT (user_id, ui_id) DO NOTHING
			RETURNING id
		),
		counted AS (
			UPDATE %[1]s
			SET likes_count = likes_count
				+ (SELECT count(*) FROM added)
				- (SELECT count(*) FROM removed)
			WHERE id = (SELECT id FROM target)
			RETURNING id
		)
		SELECT
			EXISTS (SELECT 1 FROM target),
			EXISTS (SELECT 1 FROM removed)
	`, r.tables.Uis, r.tables.Likes)

	var found, removed bool
	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, userID, uiID).Scan(&found, &removed)
	if err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return false, fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
		}
		return false, fmt.Errorf("toggle like: %w", err)
	}

	if !found {
		return false, fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
	}

	return !removed, nil
}

// HasLiked reports whether a like row exists for the pair
func (r *PostgresEngagementRepository) HasLiked(ctx context.Context, userID, uiID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND ui_id = $2)
	`, r.tables.Likes)

	var liked bool
	executor := postgres.GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, userID, uiID).Scan(&liked); err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return false, nil
		}
		return false, fmt.Errorf("check like: %w", err)
	}

	return liked, nil
}

// IncrementViewCount adds one view without touching updated_at
func (r *PostgresEngagementRepository) IncrementViewCount(ctx context.Context, uiID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET view_count = view_count + 1
		WHERE id = $1
	`, r.tables.Uis)

	executor := postgres.GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, uiID)
	if err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
		}
		return fmt.Errorf("increment view count: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
	}

	return nil
}
