package storage

import (
	"context"
	"fmt"

	"commanders-backend/internal/config"
)

// ImageStorage abstract nơi lưu ảnh commander.
// Store trả về ref dùng được trực tiếp làm imageUrl trong response.
type ImageStorage interface {
	// Store lưu ảnh và trả về public ref (URL hoặc data: URI)
	Store(ctx context.Context, name string, data []byte, contentType string) (string, error)

	// Remove xóa ảnh theo ref. Best-effort: trả về false khi ref không
	// thuộc storage này hoặc xóa thất bại, không bao giờ error.
	Remove(ctx context.Context, ref string) bool

	// List trả về toàn bộ refs đang lưu, dùng cho orphan cleanup job
	List(ctx context.Context) ([]string, error)
}

// NewImageStorage chọn driver theo config
func NewImageStorage(cfg config.StorageConfig) (ImageStorage, error) {
	switch cfg.Driver {
	case "minio":
		return NewMinIOStorage(cfg)
	case "local":
		return NewLocalStorage(cfg.LocalDir)
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
}
