package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist.
// Statements are idempotent so it is safe to run on every start.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		// Profiles are owned by the auth system; rows are read for owner info only
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				name TEXT,
				image TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Users),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %[1]s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				owner_id UUID NOT NULL,
				ui_type TEXT NOT NULL,
				prompt TEXT NOT NULL,
				public BOOLEAN NOT NULL DEFAULT TRUE,
				preview_image TEXT NOT NULL DEFAULT '',
				view_count BIGINT NOT NULL DEFAULT 0 CHECK (view_count >= 0),
				likes_count BIGINT NOT NULL DEFAULT 0 CHECK (likes_count >= 0),
				forked_from UUID REFERENCES %[1]s(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_owner_idx ON %[1]s (owner_id, created_at DESC)`, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_created_idx ON %[1]s (created_at DESC)`, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_updated_idx ON %[1]s (updated_at DESC)`, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_likes_idx ON %[1]s (likes_count DESC, created_at)`, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_views_idx ON %[1]s (view_count DESC, created_at)`, tables.Uis),

		// (ui_id, sub_id) uniqueness is what surfaces allocator collisions
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				ui_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				sub_id TEXT NOT NULL,
				sub_prompt TEXT NOT NULL,
				model_id TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (ui_id, sub_id)
			)`, tables.SubPrompts, tables.Uis),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				subprompt_id UUID NOT NULL UNIQUE REFERENCES %s(id) ON DELETE CASCADE,
				code TEXT NOT NULL
			)`, tables.Codes, tables.SubPrompts),

		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				user_id UUID NOT NULL,
				ui_id UUID NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (user_id, ui_id)
			)`, tables.Likes, tables.Uis),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %[1]s_user_idx ON %[1]s (user_id, created_at DESC)`, tables.Likes),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	return nil
}

// DropSchema removes every table, children first
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range []string{tables.Likes, tables.Codes, tables.SubPrompts, tables.Uis, tables.Users} {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// TruncateData clears all rows but keeps the schema
func TruncateData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf("TRUNCATE %s, %s, %s, %s, %s CASCADE",
		tables.Likes, tables.Codes, tables.SubPrompts, tables.Uis, tables.Users)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("truncate data: %w", err)
	}
	return nil
}
