package settings

import "context"

// SettingsRepository quản lý singleton row
type SettingsRepository interface {
	// Get trả về ErrSettingsNotFound khi row chưa tồn tại
	Get(ctx context.Context) (*Settings, error)
	Create(ctx context.Context, entity *Settings) (*Settings, error)
	Update(ctx context.Context, entity *Settings) (*Settings, error)
}
