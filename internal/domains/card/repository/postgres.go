package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/shared"
	"commanders-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) card.CardRepository {
	return &postgresRepository{pool: pool}
}

const cardColumns = `
	id, name, description, image_url, tier, attributes,
	birth_year, death_year, status, created_at, updated_at`

// scanCard đọc một row thành *card.Card.
// Attributes lưu dạng JSON text; corrupt data degrade về zero record.
func scanCard(row pgx.Row) (*card.Card, error) {
	c := &card.Card{}
	var rawAttrs string
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Description,
		&c.ImageURL,
		&c.Tier,
		&rawAttrs,
		&c.BirthYear,
		&c.DeathYear,
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Attributes = shared.ParseAttributes(rawAttrs)
	return c, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *card.Card) (*card.Card, error) {
	query := `
		INSERT INTO cards (
			id, name, description, image_url, tier, attributes,
			birth_year, death_year, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING` + cardColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Description,
		entity.ImageURL,
		entity.Tier,
		entity.Attributes.Serialize(),
		entity.BirthYear,
		entity.DeathYear,
		entity.Status,
		entity.CreatedAt,
		entity.UpdatedAt,
	)

	created, err := scanCard(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			logger.Error("Create: duplicate card name", err)
			return nil, card.ErrDuplicateName
		}
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*card.Card, error) {
	query := `SELECT` + cardColumns + ` FROM cards WHERE id = $1`

	found, err := scanCard(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCardNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*card.Card, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("list: database error", err)
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	cards := make([]*card.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cards: %w", err)
	}
	return cards, nil
}

func (r *postgresRepository) ListApproved(ctx context.Context) ([]*card.Card, error) {
	query := `SELECT` + cardColumns + ` FROM cards WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, card.StatusApproved)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*card.Card, error) {
	query := `SELECT` + cardColumns + ` FROM cards ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *postgresRepository) Update(ctx context.Context, entity *card.Card) (*card.Card, error) {
	query := `
		UPDATE cards SET
			name = $2, description = $3, image_url = $4, tier = $5,
			attributes = $6, birth_year = $7, death_year = $8, updated_at = $9
		WHERE id = $1
		RETURNING` + cardColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Description,
		entity.ImageURL,
		entity.Tier,
		entity.Attributes.Serialize(),
		entity.BirthYear,
		entity.DeathYear,
		entity.UpdatedAt,
	)

	updated, err := scanCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCardNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, card.ErrDuplicateName
		}
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return card.ErrCardNotFound
	}
	return nil
}

func (r *postgresRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_url FROM cards WHERE image_url <> ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to list card image refs: %w", err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("failed to scan image ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
