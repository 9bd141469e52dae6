package proposal

import (
	"time"

	"github.com/google/uuid"

	"commanders-backend/internal/shared"
)

// Status là state machine của proposal:
// pending (initial) → approved | rejected (terminal)
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Proposal là candidate card chờ admin duyệt.
// Giữ nguyên row sau khi resolve (audit trail), không xóa.
type Proposal struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	ProposerName      string            `json:"proposerName"`
	ProposerInstagram string            `json:"proposerInstagram"`
	Description       string            `json:"description"`
	ImageURL          string            `json:"imageUrl"`
	Tier              shared.Tier       `json:"tier"`
	Attributes        shared.Attributes `json:"attributes"`
	BirthYear         *int              `json:"birthYear"`
	DeathYear         *int              `json:"deathYear"`
	Status            Status            `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// NewProposal tạo proposal pending với defaults:
// zero attributes, tier Common, email rỗng nếu absent
func NewProposal(name, description string) *Proposal {
	now := time.Now().UTC()
	return &Proposal{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Tier:        shared.TierCommon,
		Attributes:  shared.Attributes{},
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
