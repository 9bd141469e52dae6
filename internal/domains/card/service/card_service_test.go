package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/infrastructure/storage"
	"commanders-backend/internal/shared"
)

// ============================================================
// FAKES
// ============================================================

type fakeCardRepo struct {
	items      map[uuid.UUID]*card.Card
	failCreate bool
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{items: make(map[uuid.UUID]*card.Card)}
}

func (r *fakeCardRepo) Create(_ context.Context, entity *card.Card) (*card.Card, error) {
	if r.failCreate {
		return nil, errors.New("insert failed")
	}
	cp := *entity
	r.items[entity.ID] = &cp
	return &cp, nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id uuid.UUID) (*card.Card, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, card.ErrCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCardRepo) ListApproved(_ context.Context) ([]*card.Card, error) {
	out := make([]*card.Card, 0)
	for _, c := range r.items {
		if c.Status == card.StatusApproved {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) ListAll(_ context.Context) ([]*card.Card, error) {
	out := make([]*card.Card, 0)
	for _, c := range r.items {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCardRepo) Update(_ context.Context, entity *card.Card) (*card.Card, error) {
	if _, ok := r.items[entity.ID]; !ok {
		return nil, card.ErrCardNotFound
	}
	cp := *entity
	r.items[entity.ID] = &cp
	return &cp, nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return card.ErrCardNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeCardRepo) ListImageRefs(_ context.Context) ([]string, error) {
	var refs []string
	for _, c := range r.items {
		if c.ImageURL != "" {
			refs = append(refs, c.ImageURL)
		}
	}
	return refs, nil
}

// fakeImages ghi lại store/remove để assert asset lifecycle
type fakeImages struct {
	stored  []string
	removed []string
}

func (f *fakeImages) Store(_ context.Context, name string, _ []byte, _ string) (string, error) {
	ref := "/uploads/" + name
	f.stored = append(f.stored, ref)
	return ref, nil
}

func (f *fakeImages) Remove(_ context.Context, ref string) bool {
	f.removed = append(f.removed, ref)
	return true
}

func (f *fakeImages) List(_ context.Context) ([]string, error) {
	return f.stored, nil
}

// memCache: in-memory implement pkg cache.Cache, đủ cho cache hit/miss test
type memCache struct {
	data    map[string][]*card.Card
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]*card.Card)}
}

func (c *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dest.(*[]*card.Card)) = v
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	c.data[key] = value.([]*card.Card)
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.data, k)
		c.deletes = append(c.deletes, k)
	}
	return nil
}

func (c *memCache) DeletePattern(_ context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			c.deletes = append(c.deletes, k)
		}
	}
	return nil
}

func (c *memCache) Ping(_ context.Context) error { return nil }

func pngBytes(t *testing.T) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func newService(repo *fakeCardRepo, images *fakeImages, c *memCache) card.CardService {
	return NewCardService(repo, images, storage.NewImageProcessor(0, 0), c)
}

// ============================================================
// TESTS
// ============================================================

func TestCardCreateDefaults(t *testing.T) {
	repo := newFakeCardRepo()
	svc := newService(repo, &fakeImages{}, newMemCache())

	created, err := svc.Create(context.Background(), card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, shared.TierCommon, created.Tier)
	assert.Equal(t, shared.Attributes{}, created.Attributes)
	assert.Equal(t, card.StatusApproved, created.Status)
	assert.Nil(t, created.BirthYear)
	assert.Empty(t, created.ImageURL)
}

func TestCardCreateValidation(t *testing.T) {
	repo := newFakeCardRepo()
	svc := newService(repo, &fakeImages{}, newMemCache())

	cases := []card.CreateCardReq{
		{Description: "no name"},
		{Name: "no description"},
		{Name: "x", Description: "d", Tier: "Ultra"},
		{Name: "x", Description: "d", Attributes: "{not json"},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), req, nil)
		assert.Error(t, err)
	}
	assert.Empty(t, repo.items)
}

func TestCardCreateWithImage(t *testing.T) {
	repo := newFakeCardRepo()
	images := &fakeImages{}
	svc := newService(repo, images, newMemCache())

	created, err := svc.Create(context.Background(), card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, &shared.ImageUpload{Filename: "saladin.png", ContentType: "image/png", Data: pngBytes(t)})
	require.NoError(t, err)

	require.Len(t, images.stored, 1)
	assert.Equal(t, images.stored[0], created.ImageURL)
	assert.Empty(t, images.removed)
}

func TestCardCreateRejectsNonImage(t *testing.T) {
	svc := newService(newFakeCardRepo(), &fakeImages{}, newMemCache())

	_, err := svc.Create(context.Background(), card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, &shared.ImageUpload{Filename: "evil.exe", ContentType: "application/octet-stream", Data: []byte("MZ...")})
	assert.ErrorIs(t, err, card.ErrInvalidImage)
}

func TestCardCreateCleansImageOnRepoFailure(t *testing.T) {
	repo := newFakeCardRepo()
	repo.failCreate = true
	images := &fakeImages{}
	svc := newService(repo, images, newMemCache())

	_, err := svc.Create(context.Background(), card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, &shared.ImageUpload{Filename: "saladin.png", ContentType: "image/png", Data: pngBytes(t)})
	require.Error(t, err)

	require.Len(t, images.stored, 1)
	assert.Equal(t, images.stored, images.removed, "orphaned asset must be cleaned up")
}

func TestListApprovedUsesCache(t *testing.T) {
	repo := newFakeCardRepo()
	c := newMemCache()
	svc := newService(repo, &fakeImages{}, c)
	ctx := context.Background()

	created, err := svc.Create(ctx, card.CreateCardReq{Name: "Saladin", Description: "d"}, nil)
	require.NoError(t, err)

	// Miss → repo → cache populated
	first, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Contains(t, c.data, shared.CacheKeyApprovedCards)

	// Hit: xoá thẳng trong repo, cache vẫn trả bản cũ
	delete(repo.items, created.ID)
	second, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestMutationsInvalidateGalleryCache(t *testing.T) {
	repo := newFakeCardRepo()
	c := newMemCache()
	svc := newService(repo, &fakeImages{}, c)
	ctx := context.Background()

	created, err := svc.Create(ctx, card.CreateCardReq{Name: "Saladin", Description: "d"}, nil)
	require.NoError(t, err)

	_, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Contains(t, c.data, shared.CacheKeyApprovedCards)

	newName := "Salah ad-Din"
	_, err = svc.Update(ctx, created.ID.String(), card.UpdateCardReq{Name: &newName}, nil)
	require.NoError(t, err)
	assert.NotContains(t, c.data, shared.CacheKeyApprovedCards)

	_, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	assert.NotContains(t, c.data, shared.CacheKeyApprovedCards)
}

func TestCardUpdatePartialMerge(t *testing.T) {
	repo := newFakeCardRepo()
	svc := newService(repo, &fakeImages{}, newMemCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
		Tier:        "Epic",
		BirthYear:   "1137",
	}, nil)
	require.NoError(t, err)

	newTier := "Legendary"
	badYear := "abc"
	updated, err := svc.Update(ctx, created.ID.String(), card.UpdateCardReq{
		Tier:      &newTier,
		DeathYear: &badYear, // invalid → null, không error
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Saladin", updated.Name)
	assert.Equal(t, shared.TierLegendary, updated.Tier)
	require.NotNil(t, updated.BirthYear)
	assert.Equal(t, 1137, *updated.BirthYear)
	assert.Nil(t, updated.DeathYear)
}

func TestCardUpdateReplacesOldImage(t *testing.T) {
	repo := newFakeCardRepo()
	images := &fakeImages{}
	svc := newService(repo, images, newMemCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, card.CreateCardReq{Name: "Saladin", Description: "d"},
		&shared.ImageUpload{Filename: "a.png", ContentType: "image/png", Data: pngBytes(t)})
	require.NoError(t, err)
	oldRef := created.ImageURL

	updated, err := svc.Update(ctx, created.ID.String(), card.UpdateCardReq{}, nil)
	require.NoError(t, err)
	assert.Equal(t, oldRef, updated.ImageURL, "update without image keeps existing ref")

	updated, err = svc.Update(ctx, created.ID.String(), card.UpdateCardReq{},
		&shared.ImageUpload{Filename: "b.png", ContentType: "image/png", Data: pngBytes(t)})
	require.NoError(t, err)
	assert.NotEqual(t, oldRef, updated.ImageURL)
	assert.Contains(t, images.removed, oldRef)
}

func TestCardDeleteRemovesAsset(t *testing.T) {
	repo := newFakeCardRepo()
	images := &fakeImages{}
	svc := newService(repo, images, newMemCache())
	ctx := context.Background()

	created, err := svc.Create(ctx, card.CreateCardReq{Name: "Saladin", Description: "d"},
		&shared.ImageUpload{Filename: "a.png", ContentType: "image/png", Data: pngBytes(t)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))

	assert.Empty(t, repo.items)
	assert.Contains(t, images.removed, created.ImageURL)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID.String()), card.ErrCardNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "nope"), card.ErrInvalidCardID)
}

func TestExportXLSX(t *testing.T) {
	repo := newFakeCardRepo()
	svc := newService(repo, &fakeImages{}, newMemCache())
	ctx := context.Background()

	_, err := svc.Create(ctx, card.CreateCardReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
		Tier:        "Legendary",
		Attributes:  `{"strength": 85}`,
		BirthYear:   "1137",
		DeathYear:   "1193",
	}, nil)
	require.NoError(t, err)

	data, err := svc.ExportXLSX(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	// XLSX là zip container, bắt đầu bằng PK
	assert.Equal(t, []byte{'P', 'K'}, data[:2])
}
