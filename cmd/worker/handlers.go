package main

import (
	"github.com/hibiken/asynq"

	"commanders-backend/internal/infrastructure/email"
	emailjob "commanders-backend/internal/infrastructure/email/job"
	queuehandlers "commanders-backend/internal/infrastructure/queue/handlers"
	"commanders-backend/internal/shared"
	"commanders-backend/pkg/container"
)

// HandlerRegistry holds all job handlers
type HandlerRegistry struct {
	// Email handlers
	proposalReceived *emailjob.ProposalReceivedHandler
	proposalApproved *emailjob.ProposalApprovedHandler
	proposalRejected *emailjob.ProposalRejectedHandler

	// Maintenance handlers
	cleanupOrphanImages *queuehandlers.CleanupOrphanImagesHandler
}

// initializeHandlers creates all job handlers with their dependencies
func initializeHandlers(c *container.Container, cfg *Config) *HandlerRegistry {
	emailSvc := email.NewSMTPEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)

	return &HandlerRegistry{
		proposalReceived: emailjob.NewProposalReceivedHandler(emailSvc),
		proposalApproved: emailjob.NewProposalApprovedHandler(emailSvc),
		proposalRejected: emailjob.NewProposalRejectedHandler(emailSvc),

		cleanupOrphanImages: queuehandlers.NewCleanupOrphanImagesHandler(
			c.CardRepo,
			c.ProposalRepo,
			c.Images,
		),
	}
}

// RegisterHandlers registers all handlers with the mux
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	// Email tasks
	mux.HandleFunc(shared.TypeProposalReceivedEmail, h.proposalReceived.ProcessTask)
	mux.HandleFunc(shared.TypeProposalApprovedEmail, h.proposalApproved.ProcessTask)
	mux.HandleFunc(shared.TypeProposalRejectedEmail, h.proposalRejected.ProcessTask)

	// Maintenance tasks
	mux.HandleFunc(shared.TypeCleanupOrphanImages, h.cleanupOrphanImages.ProcessTask)
}
