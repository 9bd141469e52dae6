package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"commanders-backend/pkg/logger"
)

// LocalStorage lưu ảnh xuống disk, serve qua static route /uploads.
// Dùng cho development khi không có MinIO.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStorage{dir: dir}, nil
}

func (s *LocalStorage) Store(_ context.Context, name string, data []byte, _ string) (string, error) {
	// filepath.Base chặn path traversal trong name
	name = filepath.Base(name)

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return "/uploads/" + name, nil
}

func (s *LocalStorage) Remove(_ context.Context, ref string) bool {
	name, ok := strings.CutPrefix(ref, "/uploads/")
	if !ok {
		return false
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to remove local image", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
		return false
	}
	return true
}

func (s *LocalStorage) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload dir: %w", err)
	}

	var refs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		refs = append(refs, "/uploads/"+entry.Name())
	}
	return refs, nil
}
