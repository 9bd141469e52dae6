package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/infrastructure/storage"
	"commanders-backend/internal/shared"
	"commanders-backend/internal/shared/utils"
	"commanders-backend/pkg/cache"
	"commanders-backend/pkg/logger"
)

const (
	approvedCardsCacheKey = shared.CacheKeyApprovedCards
	approvedCardsCacheTTL = 5 * time.Minute
)

type cardService struct {
	repo      card.CardRepository
	images    storage.ImageStorage
	processor *storage.ImageProcessor
	cache     cache.Cache
}

func NewCardService(
	repo card.CardRepository,
	images storage.ImageStorage,
	processor *storage.ImageProcessor,
	c cache.Cache,
) card.CardService {
	return &cardService{
		repo:      repo,
		images:    images,
		processor: processor,
		cache:     c,
	}
}

// storeImage validate, downscale và lưu ảnh, trả về public ref
func (s *cardService) storeImage(ctx context.Context, upload *shared.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(upload.Data); err != nil {
		return "", fmt.Errorf("%w: %s", card.ErrInvalidImage, err.Error())
	}

	data, contentType, err := s.processor.Process(upload.Data, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", card.ErrInvalidImage, err.Error())
	}

	ext := filepath.Ext(upload.Filename)
	if contentType == "image/jpeg" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext

	ref, err := s.images.Store(ctx, name, data, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return ref, nil
}

// removeImage best-effort: failure chỉ log, không bao giờ propagate
func (s *cardService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if !s.images.Remove(ctx, ref) {
		logger.Warn("Could not remove card image asset", map[string]interface{}{
			"ref": ref,
		})
	}
}

func (s *cardService) invalidateGallery(ctx context.Context) {
	if err := s.cache.DeletePattern(ctx, shared.CacheKeyCardsPattern); err != nil {
		logger.Warn("Failed to invalidate gallery cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *cardService) Create(ctx context.Context, req card.CreateCardReq, image *shared.ImageUpload) (*card.Card, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity := card.NewCard(
		req.Name,
		req.Description,
		shared.Tier(req.Tier),
		shared.ParseAttributes(req.Attributes),
		utils.NormalizeYear(req.BirthYear),
		utils.NormalizeYear(req.DeathYear),
	)

	if image != nil {
		ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		entity.ImageURL = ref
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		// card row không tồn tại, dọn ảnh vừa lưu
		s.removeImage(ctx, entity.ImageURL)
		return nil, err
	}

	s.invalidateGallery(ctx)
	return created, nil
}

func (s *cardService) GetByID(ctx context.Context, id string) (*card.Card, error) {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return nil, card.ErrInvalidCardID
	}
	return s.repo.GetByID(ctx, cardID)
}

func (s *cardService) ListApproved(ctx context.Context) ([]*card.Card, error) {
	var cached []*card.Card
	hit, err := s.cache.Get(ctx, approvedCardsCacheKey, &cached)
	if err != nil {
		logger.Warn("Gallery cache read failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if hit {
		return cached, nil
	}

	cards, err := s.repo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, approvedCardsCacheKey, cards, approvedCardsCacheTTL); err != nil {
		logger.Warn("Gallery cache write failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return cards, nil
}

func (s *cardService) ListAll(ctx context.Context) ([]*card.Card, error) {
	return s.repo.ListAll(ctx)
}

func (s *cardService) Update(ctx context.Context, id string, req card.UpdateCardReq, image *shared.ImageUpload) (*card.Card, error) {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return nil, card.ErrInvalidCardID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	// Partial merge: chỉ field được gửi lên mới thay đổi
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Tier != nil && *req.Tier != "" {
		existing.Tier = shared.Tier(*req.Tier)
	}
	if req.Attributes != nil {
		existing.Attributes = shared.ParseAttributes(*req.Attributes)
	}
	if req.BirthYear != nil {
		existing.BirthYear = utils.NormalizeYear(*req.BirthYear)
	}
	if req.DeathYear != nil {
		existing.DeathYear = utils.NormalizeYear(*req.DeathYear)
	}

	oldImage := existing.ImageURL
	if image != nil {
		ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		existing.ImageURL = ref
	}

	existing.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		if image != nil {
			s.removeImage(ctx, existing.ImageURL)
		}
		return nil, err
	}

	// Ảnh cũ đã bị thay, dọn asset cũ
	if image != nil && oldImage != "" && oldImage != updated.ImageURL {
		s.removeImage(ctx, oldImage)
	}

	s.invalidateGallery(ctx)
	return updated, nil
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	cardID, err := uuid.Parse(id)
	if err != nil {
		return card.ErrInvalidCardID
	}

	existing, err := s.repo.GetByID(ctx, cardID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cardID); err != nil {
		return err
	}

	s.removeImage(ctx, existing.ImageURL)
	s.invalidateGallery(ctx)
	return nil
}

// ExportXLSX render collection thành Excel workbook
func (s *cardService) ExportXLSX(ctx context.Context) ([]byte, error) {
	cards, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Commanders"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Name", "Tier", "Description", "Birth Year", "Death Year",
		"Strength", "Intelligence", "Charisma", "Leadership",
		"Attack", "Defense", "Speed", "Health", "Created At",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	yearValue := func(y *int) interface{} {
		if y == nil {
			return ""
		}
		return *y
	}

	for i, c := range cards {
		row := i + 2
		values := []interface{}{
			c.Name, string(c.Tier), c.Description,
			yearValue(c.BirthYear), yearValue(c.DeathYear),
			c.Attributes.Strength, c.Attributes.Intelligence,
			c.Attributes.Charisma, c.Attributes.Leadership,
			c.Attributes.Attack, c.Attributes.Defense,
			c.Attributes.Speed, c.Attributes.Health,
			c.CreatedAt.Format(time.RFC3339),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
