package settings

import "context"

// SettingsService expose singleton settings.
// ContactEmail được proposal domain dùng làm notification recipient.
type SettingsService interface {
	// Get không bao giờ trả NotFound: absent row → defaults
	Get(ctx context.Context) (*Settings, error)

	// Update lazily insert row đầu tiên, sau đó update in place
	Update(ctx context.Context, req UpdateSettingsReq) (*Settings, error)

	// ContactEmail trả về admin email hiện tại, fallback config
	ContactEmail(ctx context.Context) string
}
