package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/domains/proposal"
	"commanders-backend/internal/infrastructure/email"
	"commanders-backend/internal/infrastructure/storage"
	"commanders-backend/internal/shared"
)

// ============================================================
// FAKES
// ============================================================

type fakeProposalRepo struct {
	items map[uuid.UUID]*proposal.Proposal
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{items: make(map[uuid.UUID]*proposal.Proposal)}
}

func (r *fakeProposalRepo) clone(p *proposal.Proposal) *proposal.Proposal {
	cp := *p
	return &cp
}

func (r *fakeProposalRepo) Create(_ context.Context, entity *proposal.Proposal) (*proposal.Proposal, error) {
	r.items[entity.ID] = r.clone(entity)
	return r.clone(entity), nil
}

func (r *fakeProposalRepo) GetByID(_ context.Context, id uuid.UUID) (*proposal.Proposal, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, proposal.ErrProposalNotFound
	}
	return r.clone(p), nil
}

func (r *fakeProposalRepo) ListPending(_ context.Context) ([]*proposal.Proposal, error) {
	var out []*proposal.Proposal
	for _, p := range r.items {
		if p.Status == proposal.StatusPending {
			out = append(out, r.clone(p))
		}
	}
	return out, nil
}

func (r *fakeProposalRepo) ListAll(_ context.Context) ([]*proposal.Proposal, error) {
	var out []*proposal.Proposal
	for _, p := range r.items {
		out = append(out, r.clone(p))
	}
	return out, nil
}

func (r *fakeProposalRepo) Update(_ context.Context, entity *proposal.Proposal) (*proposal.Proposal, error) {
	if _, ok := r.items[entity.ID]; !ok {
		return nil, proposal.ErrProposalNotFound
	}
	r.items[entity.ID] = r.clone(entity)
	return r.clone(entity), nil
}

func (r *fakeProposalRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to proposal.Status) (bool, error) {
	p, ok := r.items[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *fakeProposalRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return proposal.ErrProposalNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeProposalRepo) ListImageRefs(_ context.Context) ([]string, error) {
	var refs []string
	for _, p := range r.items {
		if p.ImageURL != "" {
			refs = append(refs, p.ImageURL)
		}
	}
	return refs, nil
}

type fakeCardRepo struct {
	items      map[uuid.UUID]*card.Card
	failCreate bool
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{items: make(map[uuid.UUID]*card.Card)}
}

func (r *fakeCardRepo) Create(_ context.Context, entity *card.Card) (*card.Card, error) {
	if r.failCreate {
		return nil, errors.New("card insert failed")
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
	var out []*card.Card
	for _, c := range r.items {
		if c.Status == card.StatusApproved {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCardRepo) ListAll(_ context.Context) ([]*card.Card, error) {
	var out []*card.Card
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

type fakeNotifier struct {
	received []email.ProposalReceivedData
	approved []email.ProposalResolvedData
	rejected []email.ProposalResolvedData
}

func (n *fakeNotifier) ProposalReceived(_ context.Context, data email.ProposalReceivedData) {
	n.received = append(n.received, data)
}

func (n *fakeNotifier) ProposalApproved(_ context.Context, data email.ProposalResolvedData) {
	n.approved = append(n.approved, data)
}

func (n *fakeNotifier) ProposalRejected(_ context.Context, data email.ProposalResolvedData) {
	n.rejected = append(n.rejected, data)
}

type fakeContact struct{ email string }

func (c *fakeContact) ContactEmail(_ context.Context) string { return c.email }

// spyCache chỉ ghi lại invalidation calls, không cache gì cả
type spyCache struct {
	patterns []string
}

func (c *spyCache) Get(_ context.Context, _ string, _ interface{}) (bool, error) { return false, nil }
func (c *spyCache) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return nil
}
func (c *spyCache) Delete(_ context.Context, _ ...string) error { return nil }
func (c *spyCache) DeletePattern(_ context.Context, pattern string) error {
	c.patterns = append(c.patterns, pattern)
	return nil
}
func (c *spyCache) Ping(_ context.Context) error { return nil }

// ============================================================
// FIXTURE
// ============================================================

type fixture struct {
	svc      proposal.ProposalService
	repo     *fakeProposalRepo
	cards    *fakeCardRepo
	notifier *fakeNotifier
	cache    *spyCache
}

func newFixture() *fixture {
	repo := newFakeProposalRepo()
	cards := newFakeCardRepo()
	notifier := &fakeNotifier{}
	c := &spyCache{}
	svc := NewProposalService(
		repo,
		cards,
		storage.NewMemoryStorage(),
		storage.NewImageProcessor(0, 0),
		notifier,
		&fakeContact{email: "admin@example.com"},
		c,
	)
	return &fixture{svc: svc, repo: repo, cards: cards, notifier: notifier, cache: c}
}

// ============================================================
// TESTS
// ============================================================

func TestCreateDefaults(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, proposal.StatusPending, created.Status)
	assert.Equal(t, shared.TierCommon, created.Tier)
	assert.Equal(t, shared.Attributes{}, created.Attributes)
	assert.Empty(t, created.Email)
	assert.Nil(t, created.BirthYear)

	// Admin notification fired with configured contact
	require.Len(t, f.notifier.received, 1)
	assert.Equal(t, "admin@example.com", f.notifier.received[0].AdminEmail)
	assert.Equal(t, "Saladin", f.notifier.received[0].CommanderName)
}

func TestCreateRequiresNameAndDescription(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), proposal.CreateProposalReq{Name: "Saladin"}, nil)
	assert.Error(t, err)

	_, err = f.svc.Create(context.Background(), proposal.CreateProposalReq{Description: "no name"}, nil)
	assert.Error(t, err)

	assert.Empty(t, f.repo.items)
	assert.Empty(t, f.notifier.received)
}

func TestCreateNormalizesYears(t *testing.T) {
	f := newFixture()

	created, err := f.svc.Create(context.Background(), proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
		BirthYear:   "1137",
		DeathYear:   "3000", // out of range → null
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, created.BirthYear)
	assert.Equal(t, 1137, *created.BirthYear)
	assert.Nil(t, created.DeathYear)
}

func TestApprovePendingCreatesCard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
		Email:       "proposer@example.com",
		Tier:        "Legendary",
		Attributes:  `{"strength": 85, "leadership": 95}`,
		BirthYear:   "1137",
	}, nil)
	require.NoError(t, err)

	pending, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	newCard, err := f.svc.Approve(ctx, created.ID.String())
	require.NoError(t, err)

	// Card inherits proposal fields
	assert.Equal(t, "Saladin", newCard.Name)
	assert.Equal(t, "Ayyubid founder", newCard.Description)
	assert.Equal(t, shared.TierLegendary, newCard.Tier)
	assert.Equal(t, 85, newCard.Attributes.Strength)
	assert.Equal(t, 95, newCard.Attributes.Leadership)
	require.NotNil(t, newCard.BirthYear)
	assert.Equal(t, 1137, *newCard.BirthYear)
	assert.Equal(t, card.StatusApproved, newCard.Status)

	// Proposal row retained with approved status
	resolved, err := f.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusApproved, resolved.Status)

	// Gone from public list
	pending, err = f.svc.ListPublic(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Approval email to proposer
	require.Len(t, f.notifier.approved, 1)
	assert.Equal(t, "proposer@example.com", f.notifier.approved[0].Email)

	// Gallery cache namespace bị sweep vì có card mới
	assert.Contains(t, f.cache.patterns, shared.CacheKeyCardsPattern)
}

func TestApproveTwiceCreatesExactlyOneCard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID.String())
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, created.ID.String())
	assert.ErrorIs(t, err, proposal.ErrAlreadyResolved)

	assert.Len(t, f.cards.items, 1)
}

func TestApproveNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Approve(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, proposal.ErrProposalNotFound)

	_, err = f.svc.Approve(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, proposal.ErrInvalidProposalID)
}

func TestApproveRevertsStatusWhenCardCreateFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	f.cards.failCreate = true
	_, err = f.svc.Approve(ctx, created.ID.String())
	require.Error(t, err)

	// Proposal về lại pending để admin approve lại được
	after, err := f.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusPending, after.Status)
	assert.Empty(t, f.cards.items)
}

func TestRejectSetsStatusAndCreatesNoCard(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
		Email:       "proposer@example.com",
	}, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.Reject(ctx, created.ID.String()))

	after, err := f.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusRejected, after.Status)
	assert.Empty(t, f.cards.items)

	require.Len(t, f.notifier.rejected, 1)
	assert.Equal(t, "proposer@example.com", f.notifier.rejected[0].Email)

	// Terminal state: không reject lại được
	assert.ErrorIs(t, f.svc.Reject(ctx, created.ID.String()), proposal.ErrAlreadyResolved)
}

func TestUpdatePendingPartialMerge(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	newTier := "Epic"
	newYear := "1137"
	updated, err := f.svc.Update(ctx, created.ID.String(), proposal.UpdateProposalReq{
		Tier:      &newTier,
		BirthYear: &newYear,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Saladin", updated.Name, "unset fields unchanged")
	assert.Equal(t, shared.TierEpic, updated.Tier)
	require.NotNil(t, updated.BirthYear)
	assert.Equal(t, 1137, *updated.BirthYear)
	assert.Equal(t, proposal.StatusPending, updated.Status)
}

func TestUpdateNonPendingFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)
	_, err = f.svc.Approve(ctx, created.ID.String())
	require.NoError(t, err)

	newName := "Renamed"
	_, err = f.svc.Update(ctx, created.ID.String(), proposal.UpdateProposalReq{Name: &newName}, nil)
	assert.ErrorIs(t, err, proposal.ErrNotPending)

	// No mutation happened
	after, err := f.svc.GetByID(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Saladin", after.Name)
}

func TestRemovePendingFails(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Remove(ctx, created.ID.String()), proposal.ErrPendingDelete)

	_, err = f.svc.GetByID(ctx, created.ID.String())
	assert.NoError(t, err, "pending proposal must not be deleted")
}

func TestRemoveResolvedProposal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, proposal.CreateProposalReq{
		Name:        "Saladin",
		Description: "Ayyubid founder",
	}, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.Reject(ctx, created.ID.String()))

	require.NoError(t, f.svc.Remove(ctx, created.ID.String()))

	_, err = f.svc.GetByID(ctx, created.ID.String())
	assert.ErrorIs(t, err, proposal.ErrProposalNotFound)

	assert.ErrorIs(t, f.svc.Remove(ctx, created.ID.String()), proposal.ErrProposalNotFound)
}

func TestListPublicExcludesResolved(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	a, err := f.svc.Create(ctx, proposal.CreateProposalReq{Name: "A", Description: "d"}, nil)
	require.NoError(t, err)
	b, err := f.svc.Create(ctx, proposal.CreateProposalReq{Name: "B", Description: "d"}, nil)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, proposal.CreateProposalReq{Name: "C", Description: "d"}, nil)
	require.NoError(t, err)

	_, err = f.svc.Approve(ctx, a.ID.String())
	require.NoError(t, err)
	require.NoError(t, f.svc.Reject(ctx, b.ID.String()))

	public, err := f.svc.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "C", public[0].Name)

	all, err := f.svc.ListAllAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
