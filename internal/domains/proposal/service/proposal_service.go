package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/domains/proposal"
	"commanders-backend/internal/infrastructure/email"
	"commanders-backend/internal/infrastructure/storage"
	"commanders-backend/internal/shared"
	"commanders-backend/internal/shared/utils"
	"commanders-backend/pkg/cache"
	"commanders-backend/pkg/logger"
)

type proposalService struct {
	repo      proposal.ProposalRepository
	cardRepo  card.CardRepository
	images    storage.ImageStorage
	processor *storage.ImageProcessor
	notifier  proposal.Notifier
	contact   proposal.AdminContact
	cache     cache.Cache
}

func NewProposalService(
	repo proposal.ProposalRepository,
	cardRepo card.CardRepository,
	images storage.ImageStorage,
	processor *storage.ImageProcessor,
	notifier proposal.Notifier,
	contact proposal.AdminContact,
	c cache.Cache,
) proposal.ProposalService {
	return &proposalService{
		repo:      repo,
		cardRepo:  cardRepo,
		images:    images,
		processor: processor,
		notifier:  notifier,
		contact:   contact,
		cache:     c,
	}
}

func (s *proposalService) storeImage(ctx context.Context, upload *shared.ImageUpload) (string, error) {
	if err := s.processor.ValidateImage(upload.Data); err != nil {
		return "", fmt.Errorf("%w: %s", proposal.ErrInvalidImage, err.Error())
	}

	data, contentType, err := s.processor.Process(upload.Data, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", proposal.ErrInvalidImage, err.Error())
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

func (s *proposalService) removeImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if !s.images.Remove(ctx, ref) {
		logger.Warn("Could not remove proposal image asset", map[string]interface{}{
			"ref": ref,
		})
	}
}

func (s *proposalService) Create(ctx context.Context, req proposal.CreateProposalReq, image *shared.ImageUpload) (*proposal.Proposal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entity := proposal.NewProposal(req.Name, req.Description)
	entity.Email = req.Email
	entity.ProposerName = req.ProposerName
	entity.ProposerInstagram = req.ProposerInstagram
	if req.Tier != "" {
		entity.Tier = shared.Tier(req.Tier)
	}
	if req.Attributes != "" {
		entity.Attributes = shared.ParseAttributes(req.Attributes)
	}
	entity.BirthYear = utils.NormalizeYear(req.BirthYear)
	entity.DeathYear = utils.NormalizeYear(req.DeathYear)

	if image != nil {
		ref, err := s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		entity.ImageURL = ref
	}

	created, err := s.repo.Create(ctx, entity)
	if err != nil {
		s.removeImage(ctx, entity.ImageURL)
		return nil, err
	}

	// Fire and forget: admin notification không block response
	s.notifier.ProposalReceived(ctx, email.ProposalReceivedData{
		AdminEmail:    s.contact.ContactEmail(ctx),
		ProposerEmail: created.Email,
		CommanderName: created.Name,
	})

	return created, nil
}

func (s *proposalService) GetByID(ctx context.Context, id string) (*proposal.Proposal, error) {
	proposalID, err := uuid.Parse(id)
	if err != nil {
		return nil, proposal.ErrInvalidProposalID
	}
	return s.repo.GetByID(ctx, proposalID)
}

func (s *proposalService) ListPublic(ctx context.Context) ([]*proposal.Proposal, error) {
	return s.repo.ListPending(ctx)
}

func (s *proposalService) ListAllAdmin(ctx context.Context) ([]*proposal.Proposal, error) {
	return s.repo.ListAll(ctx)
}

func (s *proposalService) Update(ctx context.Context, id string, req proposal.UpdateProposalReq, image *shared.ImageUpload) (*proposal.Proposal, error) {
	proposalID, err := uuid.Parse(id)
	if err != nil {
		return nil, proposal.ErrInvalidProposalID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if existing.Status != proposal.StatusPending {
		return nil, proposal.ErrNotPending
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.ProposerName != nil {
		existing.ProposerName = *req.ProposerName
	}
	if req.ProposerInstagram != nil {
		existing.ProposerInstagram = *req.ProposerInstagram
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

	if image != nil && oldImage != "" && oldImage != updated.ImageURL {
		s.removeImage(ctx, oldImage)
	}
	return updated, nil
}

// Approve là transition pending→approved + derive Card.
// CAS guard đảm bảo hai approve đồng thời chỉ tạo đúng một Card.
func (s *proposalService) Approve(ctx context.Context, id string) (*card.Card, error) {
	proposalID, err := uuid.Parse(id)
	if err != nil {
		return nil, proposal.ErrInvalidProposalID
	}

	existing, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.TransitionStatus(ctx, proposalID, proposal.StatusPending, proposal.StatusApproved)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, proposal.ErrAlreadyResolved
	}

	// Clone proposal fields vào Card mới. Card share image ref với
	// proposal (asset không bị copy).
	newCard := card.NewCard(
		existing.Name,
		existing.Description,
		existing.Tier,
		existing.Attributes,
		existing.BirthYear,
		existing.DeathYear,
	)
	newCard.ImageURL = existing.ImageURL

	created, err := s.cardRepo.Create(ctx, newCard)
	if err != nil {
		// Card creation thất bại: đưa proposal về pending để admin thử lại
		if _, revertErr := s.repo.TransitionStatus(ctx, proposalID, proposal.StatusApproved, proposal.StatusPending); revertErr != nil {
			logger.Error("Approve: failed to revert proposal status", revertErr)
		}
		return nil, err
	}

	if err := s.cache.DeletePattern(ctx, shared.CacheKeyCardsPattern); err != nil {
		logger.Warn("Failed to invalidate gallery cache", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if existing.Email != "" {
		s.notifier.ProposalApproved(ctx, email.ProposalResolvedData{
			Email:         existing.Email,
			CommanderName: existing.Name,
		})
	}

	return created, nil
}

func (s *proposalService) Reject(ctx context.Context, id string) error {
	proposalID, err := uuid.Parse(id)
	if err != nil {
		return proposal.ErrInvalidProposalID
	}

	existing, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}

	moved, err := s.repo.TransitionStatus(ctx, proposalID, proposal.StatusPending, proposal.StatusRejected)
	if err != nil {
		return err
	}
	if !moved {
		return proposal.ErrAlreadyResolved
	}

	if existing.Email != "" {
		s.notifier.ProposalRejected(ctx, email.ProposalResolvedData{
			Email:         existing.Email,
			CommanderName: existing.Name,
		})
	}
	return nil
}

func (s *proposalService) Remove(ctx context.Context, id string) error {
	proposalID, err := uuid.Parse(id)
	if err != nil {
		return proposal.ErrInvalidProposalID
	}

	existing, err := s.repo.GetByID(ctx, proposalID)
	if err != nil {
		return err
	}
	if existing.Status == proposal.StatusPending {
		return proposal.ErrPendingDelete
	}

	if err := s.repo.Delete(ctx, proposalID); err != nil {
		return err
	}

	// Approved proposal share image ref với Card đã derive,
	// nên chỉ dọn asset khi proposal bị reject
	if existing.Status == proposal.StatusRejected {
		s.removeImage(ctx, existing.ImageURL)
	}
	return nil
}
