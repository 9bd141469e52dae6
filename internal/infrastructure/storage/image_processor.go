package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageProcessor validate và chuẩn hóa ảnh upload trước khi lưu
type ImageProcessor struct {
	MaxSize int64 // bytes
	MaxEdge int   // ảnh có cạnh lớn hơn sẽ bị downscale
}

func NewImageProcessor(maxSize int64, maxEdge int) *ImageProcessor {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	if maxEdge <= 0 {
		maxEdge = 1600
	}
	return &ImageProcessor{MaxSize: maxSize, MaxEdge: maxEdge}
}

// ValidateImage check size cap và format (jpeg/png/gif)
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png", "gif":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png/gif)", format)
	}
}

// Process downscale ảnh quá lớn về MaxEdge và re-encode JPEG quality 90.
// Ảnh đã vừa size thì giữ nguyên bytes gốc.
// Trả về (bytes, contentType, error).
func (p *ImageProcessor) Process(data []byte, contentType string) ([]byte, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode image: %w", err)
	}

	if cfg.Width <= p.MaxEdge && cfg.Height <= p.MaxEdge {
		return data, contentType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("cannot decode image: %w", err)
	}

	resized := imaging.Fit(img, p.MaxEdge, p.MaxEdge, imaging.Lanczos)
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, "", fmt.Errorf("cannot encode resized image: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}
