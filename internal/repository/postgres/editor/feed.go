package editor

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	models "website-editor/internal/domain/models/editor"
	editorRepo "website-editor/internal/domain/repositories/editor"
	"website-editor/internal/repository/postgres"
)

// feedOrder maps each mode to a fixed ORDER BY; u.id breaks ties so pages are stable
var feedOrder = map[models.FeedMode]string{
	models.FeedModeLatest:     "u.created_at DESC, u.id DESC",
	models.FeedModeMostLiked:  "u.likes_count DESC, u.created_at ASC, u.id ASC",
	models.FeedModeMostViewed: "u.view_count DESC, u.created_at ASC, u.id ASC",
}

// PostgresFeedRepository implements the FeedRepository interface
type PostgresFeedRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
}

// NewFeedRepository creates a new feed repository
func NewFeedRepository(config *postgres.RepositoryConfig) editorRepo.FeedRepository {
	return &PostgresFeedRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List returns one page of the global listing
func (r *PostgresFeedRepository) List(ctx context.Context, query *models.FeedQuery) ([]models.Ui, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("list uis: %w", err)
	}
	order := feedOrder[query.Mode]

	var conditions []string
	var args []any
	if query.PublicOnly {
		conditions = append(conditions, "u.public")
	}
	if query.Since != nil {
		args = append(args, *query.Since)
		conditions = append(conditions, fmt.Sprintf("u.created_at >= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, query.Start, query.Limit)
	sql := fmt.Sprintf(`%s
		%s
		ORDER BY %s
		OFFSET $%d LIMIT $%d
	`, uiSelect(r.tables), where, order, len(args)-1, len(args))

	return r.queryUis(ctx, "list uis", sql, args...)
}

// ListRecentlyUpdated returns the most recently touched UIs
func (r *PostgresFeedRepository) ListRecentlyUpdated(ctx context.Context, limit int, publicOnly bool) ([]models.Ui, error) {
	sql := fmt.Sprintf(`%s
		WHERE (u.public OR NOT $1)
		ORDER BY u.updated_at DESC, u.id DESC
		LIMIT $2
	`, uiSelect(r.tables))

	return r.queryUis(ctx, "list recently updated", sql, publicOnly, limit)
}

// ListByOwner returns a user's UIs newest first
func (r *PostgresFeedRepository) ListByOwner(ctx context.Context, ownerID string, start, limit int, publicOnly bool) ([]models.Ui, error) {
	sql := fmt.Sprintf(`%s
		WHERE u.owner_id = $1 AND (u.public OR NOT $2)
		ORDER BY u.created_at DESC, u.id DESC
		OFFSET $3 LIMIT $4
	`, uiSelect(r.tables))

	return r.queryUis(ctx, "list by owner", sql, ownerID, publicOnly, start, limit)
}

// ListLikedBy returns the public UIs a user liked, most recent like first
func (r *PostgresFeedRepository) ListLikedBy(ctx context.Context, userID string, start, limit int) ([]models.Ui, error) {
	sql := fmt.Sprintf(`%s
		JOIN %s l ON l.ui_id = u.id
		WHERE l.user_id = $1 AND u.public
		ORDER BY l.created_at DESC, u.id DESC
		OFFSET $2 LIMIT $3
	`, uiSelect(r.tables), r.tables.Likes)

	return r.queryUis(ctx, "list liked", sql, userID, start, limit)
}

func (r *PostgresFeedRepository) queryUis(ctx context.Context, op, sql string, args ...any) ([]models.Ui, error) {
	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		// Malformed user ids simply match nothing
		if postgres.IsPgInvalidInputError(err) {
			return []models.Ui{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	return collectUis(rows, op)
}

func collectUis(rows pgx.Rows, op string) ([]models.Ui, error) {
	uis := []models.Ui{}
	for rows.Next() {
		ui, err := scanUiWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		uis = append(uis, *ui)
	}

	if err := rows.Err(); err != nil {
		if postgres.IsPgInvalidInputError(err) {
			return []models.Ui{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return uis, nil
}
