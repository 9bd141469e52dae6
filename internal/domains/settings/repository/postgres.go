package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commanders-backend/internal/domains/settings"
	"commanders-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) settings.SettingsRepository {
	return &postgresRepository{pool: pool}
}

const settingsColumns = `
	id, admin_email, facebook_url, twitter_url, instagram_url,
	youtube_url, tiktok_url, created_at, updated_at`

func scanSettings(row pgx.Row) (*settings.Settings, error) {
	s := &settings.Settings{}
	err := row.Scan(
		&s.ID,
		&s.AdminEmail,
		&s.FacebookURL,
		&s.TwitterURL,
		&s.InstagramURL,
		&s.YoutubeURL,
		&s.TiktokURL,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Get đọc singleton row. LIMIT 1 phòng trường hợp data cũ có nhiều row.
func (r *postgresRepository) Get(ctx context.Context) (*settings.Settings, error) {
	query := `SELECT` + settingsColumns + ` FROM settings ORDER BY created_at ASC LIMIT 1`

	found, err := scanSettings(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrSettingsNotFound
		}
		logger.Error("Get: database error", err)
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *settings.Settings) (*settings.Settings, error) {
	query := `
		INSERT INTO settings (
			id, admin_email, facebook_url, twitter_url, instagram_url,
			youtube_url, tiktok_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + settingsColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.AdminEmail,
		entity.FacebookURL,
		entity.TwitterURL,
		entity.InstagramURL,
		entity.YoutubeURL,
		entity.TiktokURL,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanSettings(row)
	if err != nil {
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create settings: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, entity *settings.Settings) (*settings.Settings, error) {
	query := `
		UPDATE settings SET
			admin_email = $2, facebook_url = $3, twitter_url = $4,
			instagram_url = $5, youtube_url = $6, tiktok_url = $7,
			updated_at = $8
		WHERE id = $1
		RETURNING` + settingsColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.AdminEmail,
		entity.FacebookURL,
		entity.TwitterURL,
		entity.InstagramURL,
		entity.YoutubeURL,
		entity.TiktokURL,
		entity.UpdatedAt,
	)

	updated, err := scanSettings(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, settings.ErrSettingsNotFound
		}
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return updated, nil
}
