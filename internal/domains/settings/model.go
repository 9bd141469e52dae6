package settings

import (
	"time"

	"github.com/google/uuid"
)

// Settings là singleton row: admin contact + social links.
// Internal id không bao giờ expose ra API.
type Settings struct {
	ID           uuid.UUID `json:"-"`
	AdminEmail   string    `json:"adminEmail"`
	FacebookURL  string    `json:"facebookUrl"`
	TwitterURL   string    `json:"twitterUrl"`
	InstagramURL string    `json:"instagramUrl"`
	YoutubeURL   string    `json:"youtubeUrl"`
	TiktokURL    string    `json:"tiktokUrl"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultSettings là view trả về khi row chưa tồn tại
func DefaultSettings(fallbackEmail string) *Settings {
	return &Settings{AdminEmail: fallbackEmail}
}
