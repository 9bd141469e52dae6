package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commanders-backend/internal/domains/settings"
)

type fakeSettingsRepo struct {
	row     *settings.Settings
	getErr  error
	creates int
	updates int
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*settings.Settings, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	if r.row == nil {
		return nil, settings.ErrSettingsNotFound
	}
	cp := *r.row
	return &cp, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *settings.Settings) (*settings.Settings, error) {
	r.creates++
	cp := *s
	r.row = &cp
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *settings.Settings) (*settings.Settings, error) {
	r.updates++
	cp := *s
	r.row = &cp
	return &cp, nil
}

func TestGetReturnsDefaultsWhenAbsent(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, "fallback@example.com")

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fallback@example.com", got.AdminEmail)
	assert.Empty(t, got.FacebookURL)
}

func TestUpdateLazyCreatesSingleton(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, "fallback@example.com")
	ctx := context.Background()

	updated, err := svc.Update(ctx, settings.UpdateSettingsReq{
		AdminEmail:  "curator@example.com",
		FacebookURL: "https://facebook.com/commanders",
	})
	require.NoError(t, err)
	assert.Equal(t, "curator@example.com", updated.AdminEmail)
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 0, repo.updates)

	// Lần update tiếp theo ghi đè row cũ, không tạo mới
	updated, err = svc.Update(ctx, settings.UpdateSettingsReq{
		AdminEmail: "other@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "other@example.com", updated.AdminEmail)
	assert.Empty(t, updated.FacebookURL, "omitted fields overwrite to empty")
	assert.Equal(t, 1, repo.creates)
	assert.Equal(t, 1, repo.updates)
}

func TestUpdateValidatesEmail(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := NewSettingsService(repo, "fallback@example.com")

	for _, email := range []string{"", "   ", "not-an-email"} {
		_, err := svc.Update(context.Background(), settings.UpdateSettingsReq{AdminEmail: email})
		assert.Error(t, err, "email %q should be rejected", email)
	}
	assert.Equal(t, 0, repo.creates)

	// Contract chỉ yêu cầu chứa "@"
	_, err := svc.Update(context.Background(), settings.UpdateSettingsReq{AdminEmail: "a@b"})
	assert.NoError(t, err)
}

func TestUpdateValidatesSocialURLs(t *testing.T) {
	svc := NewSettingsService(&fakeSettingsRepo{}, "fallback@example.com")

	_, err := svc.Update(context.Background(), settings.UpdateSettingsReq{
		AdminEmail: "curator@example.com",
		TwitterURL: "::not a url::",
	})
	assert.Error(t, err)
}

func TestContactEmailFallbacks(t *testing.T) {
	ctx := context.Background()

	// Row chưa tồn tại
	svc := NewSettingsService(&fakeSettingsRepo{}, "fallback@example.com")
	assert.Equal(t, "fallback@example.com", svc.ContactEmail(ctx))

	// Repo failure
	svc = NewSettingsService(&fakeSettingsRepo{getErr: errors.New("db down")}, "fallback@example.com")
	assert.Equal(t, "fallback@example.com", svc.ContactEmail(ctx))

	// Row tồn tại nhưng email rỗng
	svc = NewSettingsService(&fakeSettingsRepo{row: &settings.Settings{}}, "fallback@example.com")
	assert.Equal(t, "fallback@example.com", svc.ContactEmail(ctx))

	// Row có email
	svc = NewSettingsService(&fakeSettingsRepo{row: &settings.Settings{AdminEmail: "curator@example.com"}}, "fallback@example.com")
	assert.Equal(t, "curator@example.com", svc.ContactEmail(ctx))
}
