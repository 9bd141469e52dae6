package email

import (
	"context"
	"fmt"
	"net/smtp"

	"commanders-backend/pkg/logger"
)

// ProposalReceivedData báo admin có proposal mới
type ProposalReceivedData struct {
	AdminEmail    string `json:"admin_email"`
	ProposerEmail string `json:"proposer_email"`
	CommanderName string `json:"commander_name"`
}

// ProposalResolvedData báo submitter kết quả duyệt
type ProposalResolvedData struct {
	Email         string `json:"email"`
	CommanderName string `json:"commander_name"`
}

type EmailService interface {
	SendProposalReceived(ctx context.Context, data ProposalReceivedData) error
	SendProposalApproved(ctx context.Context, data ProposalResolvedData) error
	SendProposalRejected(ctx context.Context, data ProposalResolvedData) error
}

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
}

// NewSMTPEmailService gửi mail qua plain SMTP (MailHog cho dev)
func NewSMTPEmailService(smtpHost, smtpPort, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: smtpHost + ":" + smtpPort,
		smtpFrom: from,
	}
}

func (s *smtpEmailService) send(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, to, subject, body))

	if err := smtp.SendMail(s.smtpAddr, nil, s.smtpFrom, []string{to}, msg); err != nil {
		logger.Warn("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendProposalReceived(_ context.Context, data ProposalReceivedData) error {
	subject := fmt.Sprintf("New commander proposal: %s", data.CommanderName)
	body := fmt.Sprintf(`A new commander proposal has been submitted.

Commander: %s
Submitted by: %s

Review it in the admin panel.`, data.CommanderName, data.ProposerEmail)

	return s.send(data.AdminEmail, subject, body)
}

func (s *smtpEmailService) SendProposalApproved(_ context.Context, data ProposalResolvedData) error {
	subject := fmt.Sprintf("Your proposal for %s was approved", data.CommanderName)
	body := fmt.Sprintf(`Good news!

Your commander proposal for %s has been approved and is now part of the collection.

Thank you for contributing.`, data.CommanderName)

	return s.send(data.Email, subject, body)
}

func (s *smtpEmailService) SendProposalRejected(_ context.Context, data ProposalResolvedData) error {
	subject := fmt.Sprintf("Your proposal for %s was rejected", data.CommanderName)
	body := fmt.Sprintf(`Unfortunately your commander proposal for %s was not accepted this time.

You are welcome to revise and submit it again.`, data.CommanderName)

	return s.send(data.Email, subject, body)
}
