package card

import (
	"time"

	"github.com/google/uuid"

	"commanders-backend/internal/shared"
)

// Card status: cards chỉ được tạo qua admin hoặc approve proposal,
// nên status luôn là approved. Giữ column cho forward compatibility.
const StatusApproved = "approved"

// Card là một commander entry trong public gallery
type Card struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	ImageURL    string            `json:"imageUrl"`
	Tier        shared.Tier       `json:"tier"`
	Attributes  shared.Attributes `json:"attributes"`
	BirthYear   *int              `json:"birthYear"`
	DeathYear   *int              `json:"deathYear"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// NewCard tạo card mới với defaults
func NewCard(name, description string, tier shared.Tier, attrs shared.Attributes, birthYear, deathYear *int) *Card {
	now := time.Now().UTC()
	if tier == "" {
		tier = shared.TierCommon
	}
	return &Card{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Tier:        tier,
		Attributes:  attrs,
		BirthYear:   birthYear,
		DeathYear:   deathYear,
		Status:      StatusApproved,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
