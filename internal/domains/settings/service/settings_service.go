package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"commanders-backend/internal/domains/settings"
	"commanders-backend/pkg/logger"
)

type settingsService struct {
	repo          settings.SettingsRepository
	fallbackEmail string
}

func NewSettingsService(repo settings.SettingsRepository, fallbackEmail string) settings.SettingsService {
	return &settingsService{
		repo:          repo,
		fallbackEmail: fallbackEmail,
	}
}

func (s *settingsService) Get(ctx context.Context) (*settings.Settings, error) {
	found, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.DefaultSettings(s.fallbackEmail), nil
		}
		return nil, err
	}
	return found, nil
}

func (s *settingsService) Update(ctx context.Context, req settings.UpdateSettingsReq) (*settings.Settings, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	existing, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			return nil, err
		}
		// Lazy create: row đầu tiên được tạo ở lần write đầu tiên
		return s.repo.Create(ctx, &settings.Settings{
			ID:           uuid.New(),
			AdminEmail:   req.AdminEmail,
			FacebookURL:  req.FacebookURL,
			TwitterURL:   req.TwitterURL,
			InstagramURL: req.InstagramURL,
			YoutubeURL:   req.YoutubeURL,
			TiktokURL:    req.TiktokURL,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	existing.AdminEmail = req.AdminEmail
	existing.FacebookURL = req.FacebookURL
	existing.TwitterURL = req.TwitterURL
	existing.InstagramURL = req.InstagramURL
	existing.YoutubeURL = req.YoutubeURL
	existing.TiktokURL = req.TiktokURL
	existing.UpdatedAt = now

	return s.repo.Update(ctx, existing)
}

// ContactEmail là notification recipient cho proposal submissions.
// Mọi failure degrade về config fallback, không bao giờ error.
func (s *settingsService) ContactEmail(ctx context.Context) string {
	found, err := s.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settings.ErrSettingsNotFound) {
			logger.Warn("ContactEmail: falling back to config email", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return s.fallbackEmail
	}
	if found.AdminEmail == "" {
		return s.fallbackEmail
	}
	return found.AdminEmail
}
