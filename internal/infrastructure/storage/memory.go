package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// MemoryStorage không lưu file ở đâu cả: ảnh được inline thành data: URI
// và sống luôn trong record. Fallback cho môi trường không có disk/MinIO.
type MemoryStorage struct{}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Store(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data)), nil
}

// Remove: data: URI không có backing object, không có gì để xóa
func (s *MemoryStorage) Remove(_ context.Context, ref string) bool {
	return strings.HasPrefix(ref, "data:")
}

func (s *MemoryStorage) List(_ context.Context) ([]string, error) {
	return nil, nil
}
