package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"commanders-backend/internal/domains/proposal"
	"commanders-backend/internal/shared"
	"commanders-backend/pkg/logger"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) proposal.ProposalRepository {
	return &postgresRepository{pool: pool}
}

const proposalColumns = `
	id, name, email, proposer_name, proposer_instagram, description,
	image_url, tier, attributes, birth_year, death_year, status,
	created_at, updated_at`

func scanProposal(row pgx.Row) (*proposal.Proposal, error) {
	p := &proposal.Proposal{}
	var rawAttrs string
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&p.ProposerName,
		&p.ProposerInstagram,
		&p.Description,
		&p.ImageURL,
		&p.Tier,
		&rawAttrs,
		&p.BirthYear,
		&p.DeathYear,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Attributes = shared.ParseAttributes(rawAttrs)
	return p, nil
}

func (r *postgresRepository) Create(ctx context.Context, entity *proposal.Proposal) (*proposal.Proposal, error) {
	query := `
		INSERT INTO proposals (
			id, name, email, proposer_name, proposer_instagram, description,
			image_url, tier, attributes, birth_year, death_year, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING` + proposalColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.ProposerName,
		entity.ProposerInstagram,
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

	created, err := scanProposal(row)
	if err != nil {
		logger.Error("Create: database error", err)
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}
	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	query := `SELECT` + proposalColumns + ` FROM proposals WHERE id = $1`

	found, err := scanProposal(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, proposal.ErrProposalNotFound
		}
		logger.Error("GetByID: database error", err)
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return found, nil
}

func (r *postgresRepository) list(ctx context.Context, query string, args ...interface{}) ([]*proposal.Proposal, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("list: database error", err)
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	defer rows.Close()

	proposals := make([]*proposal.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read proposals: %w", err)
	}
	return proposals, nil
}

func (r *postgresRepository) ListPending(ctx context.Context) ([]*proposal.Proposal, error) {
	query := `SELECT` + proposalColumns + ` FROM proposals WHERE status = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, proposal.StatusPending)
}

func (r *postgresRepository) ListAll(ctx context.Context) ([]*proposal.Proposal, error) {
	query := `SELECT` + proposalColumns + ` FROM proposals ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *postgresRepository) Update(ctx context.Context, entity *proposal.Proposal) (*proposal.Proposal, error) {
	query := `
		UPDATE proposals SET
			name = $2, email = $3, proposer_name = $4, proposer_instagram = $5,
			description = $6, image_url = $7, tier = $8, attributes = $9,
			birth_year = $10, death_year = $11, updated_at = $12
		WHERE id = $1
		RETURNING` + proposalColumns

	row := r.pool.QueryRow(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.ProposerName,
		entity.ProposerInstagram,
		entity.Description,
		entity.ImageURL,
		entity.Tier,
		entity.Attributes.Serialize(),
		entity.BirthYear,
		entity.DeathYear,
		entity.UpdatedAt,
	)

	updated, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, proposal.ErrProposalNotFound
		}
		logger.Error("Update: database error", err)
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}
	return updated, nil
}

// TransitionStatus là compare-and-swap trên status column.
// Hai approve đồng thời: chỉ một racer thấy RowsAffected = 1.
func (r *postgresRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to proposal.Status) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE proposals SET status = $3, updated_at = now() WHERE id = $1 AND status = $2`,
		id, from, to,
	)
	if err != nil {
		logger.Error("TransitionStatus: database error", err)
		return false, fmt.Errorf("failed to transition proposal status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM proposals WHERE id = $1`, id)
	if err != nil {
		logger.Error("Delete: database error", err)
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return proposal.ErrProposalNotFound
	}
	return nil
}

func (r *postgresRepository) ListImageRefs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_url FROM proposals WHERE image_url <> ''`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposal image refs: %w", err)
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
