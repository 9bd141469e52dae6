package database

import (
	"context"
	"fmt"
	"log"
)

// schema statements chạy tuần tự khi startup.
// Idempotent (IF NOT EXISTS) nên safe khi restart nhiều lần.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS cards (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL,
		attributes TEXT NOT NULL DEFAULT '{}',
		birth_year INTEGER,
		death_year INTEGER,
		status TEXT NOT NULL DEFAULT 'approved',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS proposals (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		proposer_name TEXT NOT NULL DEFAULT '',
		proposer_instagram TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		tier TEXT NOT NULL,
		attributes TEXT NOT NULL DEFAULT '{}',
		birth_year INTEGER,
		death_year INTEGER,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_proposals_status ON proposals (status)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id UUID PRIMARY KEY,
		admin_email TEXT NOT NULL,
		facebook_url TEXT NOT NULL DEFAULT '',
		twitter_url TEXT NOT NULL DEFAULT '',
		instagram_url TEXT NOT NULL DEFAULT '',
		youtube_url TEXT NOT NULL DEFAULT '',
		tiktok_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate tạo schema nếu chưa tồn tại
func (db *PostgresDB) Migrate(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	log.Println("[DATABASE] Running schema migrations...")
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	log.Println("[DATABASE] Schema migrations completed")
	return nil
}
