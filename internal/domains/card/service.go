package card

import (
	"context"

	"commanders-backend/internal/shared"
)

// CardService là business logic contract cho cards
type CardService interface {
	Create(ctx context.Context, req CreateCardReq, image *shared.ImageUpload) (*Card, error)
	GetByID(ctx context.Context, id string) (*Card, error)
	ListApproved(ctx context.Context) ([]*Card, error)
	ListAll(ctx context.Context) ([]*Card, error)
	Update(ctx context.Context, id string, req UpdateCardReq, image *shared.ImageUpload) (*Card, error)
	Delete(ctx context.Context, id string) error

	// ExportXLSX render toàn bộ collection thành Excel workbook cho admin
	ExportXLSX(ctx context.Context) ([]byte, error)
}
