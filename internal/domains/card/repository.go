package card

import (
	"context"

	"github.com/google/uuid"
)

// CardRepository là data access contract cho cards
type CardRepository interface {
	Create(ctx context.Context, entity *Card) (*Card, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Card, error)

	// ListApproved chỉ trả về approved cards, newest first (public gallery)
	ListApproved(ctx context.Context) ([]*Card, error)

	// ListAll trả về mọi card không filter status, newest first
	ListAll(ctx context.Context) ([]*Card, error)

	Update(ctx context.Context, entity *Card) (*Card, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// ListImageRefs trả về mọi image ref đang được card nào đó giữ,
	// dùng cho orphan cleanup job
	ListImageRefs(ctx context.Context) ([]string, error)
}
