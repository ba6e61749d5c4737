package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// RSVPConfirmationEmailData holds data for the RSVP confirmation email.
type RSVPConfirmationEmailData struct {
	Email     string
	UserName  string
	Title     string
	Address   string
	EventDate string // preformatted; empty when the meetup has no date
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendRSVPConfirmation(ctx context.Context, data *RSVPConfirmationEmailData) error
}
