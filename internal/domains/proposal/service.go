package proposal

import (
	"context"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/infrastructure/email"
	"commanders-backend/internal/shared"
)

// Notifier là fire-and-forget email boundary.
// Implementations không bao giờ trả lỗi về request path.
type Notifier interface {
	ProposalReceived(ctx context.Context, data email.ProposalReceivedData)
	ProposalApproved(ctx context.Context, data email.ProposalResolvedData)
	ProposalRejected(ctx context.Context, data email.ProposalResolvedData)
}

// AdminContact cung cấp recipient cho proposal-received notification
// (settings row, fallback về config)
type AdminContact interface {
	ContactEmail(ctx context.Context) string
}

// ProposalService own state machine pending → approved/rejected
type ProposalService interface {
	// Create persist proposal pending + notify admin (best effort)
	Create(ctx context.Context, req CreateProposalReq, image *shared.ImageUpload) (*Proposal, error)

	GetByID(ctx context.Context, id string) (*Proposal, error)
	ListPublic(ctx context.Context) ([]*Proposal, error)
	ListAllAdmin(ctx context.Context) ([]*Proposal, error)

	// Update: pending-only partial merge
	Update(ctx context.Context, id string, req UpdateProposalReq, image *shared.ImageUpload) (*Proposal, error)

	// Approve: atomic pending→approved, clone fields thành Card mới,
	// best-effort email cho proposer. Trả về Card vừa tạo.
	Approve(ctx context.Context, id string) (*card.Card, error)

	// Reject: atomic pending→rejected, best-effort email
	Reject(ctx context.Context, id string) error

	// Remove: chỉ xóa được proposal đã resolve
	Remove(ctx context.Context, id string) error
}
