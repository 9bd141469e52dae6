package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"commanders-backend/internal/infrastructure/email"
)

// ============================================
// Proposal Received Handler
// ============================================

type ProposalReceivedHandler struct {
	emailService email.EmailService
}

func NewProposalReceivedHandler(emailService email.EmailService) *ProposalReceivedHandler {
	return &ProposalReceivedHandler{emailService: emailService}
}

func (h *ProposalReceivedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.ProposalReceivedData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProposalReceived payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("commander", payload.CommanderName).
		Str("admin_email", payload.AdminEmail).
		Msg("Processing proposal received email")

	if err := h.emailService.SendProposalReceived(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send proposal received email")
		return fmt.Errorf("send proposal received email: %w", err)
	}

	return nil
}

// ============================================
// Proposal Approved Handler
// ============================================

type ProposalApprovedHandler struct {
	emailService email.EmailService
}

func NewProposalApprovedHandler(emailService email.EmailService) *ProposalApprovedHandler {
	return &ProposalApprovedHandler{emailService: emailService}
}

func (h *ProposalApprovedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.ProposalResolvedData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProposalApproved payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("commander", payload.CommanderName).
		Str("email", payload.Email).
		Msg("Processing proposal approved email")

	if err := h.emailService.SendProposalApproved(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send proposal approved email")
		return fmt.Errorf("send proposal approved email: %w", err)
	}

	return nil
}

// ============================================
// Proposal Rejected Handler
// ============================================

type ProposalRejectedHandler struct {
	emailService email.EmailService
}

func NewProposalRejectedHandler(emailService email.EmailService) *ProposalRejectedHandler {
	return &ProposalRejectedHandler{emailService: emailService}
}

func (h *ProposalRejectedHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload email.ProposalResolvedData
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProposalRejected payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("commander", payload.CommanderName).
		Str("email", payload.Email).
		Msg("Processing proposal rejected email")

	if err := h.emailService.SendProposalRejected(ctx, payload); err != nil {
		log.Error().Err(err).Msg("Failed to send proposal rejected email")
		return fmt.Errorf("send proposal rejected email: %w", err)
	}

	return nil
}
