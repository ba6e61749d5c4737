package services

import (
	"context"
	"fmt"
	"log/slog"

	"meetupservice/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendRSVPConfirmation sends the "rsvp_confirmation" template to the attendee.
func (s *emailService) SendRSVPConfirmation(ctx context.Context, data *domain.RSVPConfirmationEmailData) error {
	if data == nil {
		return fmt.Errorf("rsvp confirmation data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("rsvp_confirmation", data)
	if err != nil {
		return fmt.Errorf("failed to render rsvp_confirmation template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send rsvp confirmation email: %w", err)
	}
	s.logger.InfoContext(ctx, "rsvp confirmation sent", "to", data.Email)
	return nil
}
