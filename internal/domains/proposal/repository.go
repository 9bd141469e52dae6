package proposal

import (
	"context"

	"github.com/google/uuid"
)

// ProposalRepository là data access contract cho proposals
type ProposalRepository interface {
	Create(ctx context.Context, entity *Proposal) (*Proposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Proposal, error)

	// ListPending: public view, chỉ pending, newest first
	ListPending(ctx context.Context) ([]*Proposal, error)

	// ListAll: admin view, mọi status, newest first
	ListAll(ctx context.Context) ([]*Proposal, error)

	Update(ctx context.Context, entity *Proposal) (*Proposal, error)

	// TransitionStatus là atomic compare-and-swap:
	// UPDATE ... SET status = to WHERE id = $1 AND status = from.
	// Trả về false khi row không còn ở status `from` (racer thua).
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListImageRefs cho orphan cleanup job
	ListImageRefs(ctx context.Context) ([]string, error)
}
