package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureScheduleSchema creates the schedule store tables when missing.
// Safe to call at startup.
func EnsureScheduleSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddls := []string{
		`CREATE TABLE IF NOT EXISTS posting_schedules (
			user_id TEXT PRIMARY KEY,
			is_active BOOLEAN NOT NULL DEFAULT false,
			posting_times TEXT[] NOT NULL DEFAULT '{}',
			last_title TEXT,
			last_song TEXT,
			last_hashtags TEXT,
			last_image_urls TEXT[],
			last_scheduled_at TIMESTAMPTZ,
			last_status TEXT,
			last_publish_id TEXT,
			last_error TEXT,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS oauth_tokens (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			platform TEXT NOT NULL,
			access_token TEXT NOT NULL,
			refresh_token TEXT NOT NULL DEFAULT '',
			expires_at TIMESTAMPTZ,
			scopes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			UNIQUE (user_id, platform)
		)`,
	}

	for _, ddl := range ddls {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensuring schedule schema failed: %w", err)
		}
	}
	return nil
}
