package handlers

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"commanders-backend/internal/domains/card"
	"commanders-backend/internal/domains/proposal"
	"commanders-backend/internal/infrastructure/storage"
)

// CleanupOrphanImagesHandler quét storage và xóa image objects
// không còn card/proposal nào reference. Orphans sinh ra khi
// best-effort delete trên request path thất bại.
type CleanupOrphanImagesHandler struct {
	cardRepo     card.CardRepository
	proposalRepo proposal.ProposalRepository
	images       storage.ImageStorage
}

func NewCleanupOrphanImagesHandler(
	cardRepo card.CardRepository,
	proposalRepo proposal.ProposalRepository,
	images storage.ImageStorage,
) *CleanupOrphanImagesHandler {
	return &CleanupOrphanImagesHandler{
		cardRepo:     cardRepo,
		proposalRepo: proposalRepo,
		images:       images,
	}
}

func (h *CleanupOrphanImagesHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	log.Info().Msg("Starting orphan image cleanup")

	referenced := make(map[string]struct{})

	cardRefs, err := h.cardRepo.ListImageRefs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Cleanup: failed to list card image refs")
		return err
	}
	for _, ref := range cardRefs {
		referenced[ref] = struct{}{}
	}

	proposalRefs, err := h.proposalRepo.ListImageRefs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Cleanup: failed to list proposal image refs")
		return err
	}
	for _, ref := range proposalRefs {
		referenced[ref] = struct{}{}
	}

	stored, err := h.images.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Cleanup: failed to list stored images")
		return err
	}

	removed := 0
	for _, ref := range stored {
		if _, ok := referenced[ref]; ok {
			continue
		}
		if h.images.Remove(ctx, ref) {
			removed++
		} else {
			log.Warn().Str("ref", ref).Msg("Cleanup: could not remove orphan image")
		}
	}

	log.Info().
		Int("stored", len(stored)).
		Int("referenced", len(referenced)).
		Int("removed", removed).
		Msg("Orphan image cleanup finished")

	return nil
}
