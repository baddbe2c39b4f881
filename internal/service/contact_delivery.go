package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/jys-academy-api/internal/models"
	"github.com/noah-isme/jys-academy-api/pkg/sendgridmail"
)

// ContactDelivery defines a transport to deliver contact messages.
type ContactDelivery interface {
	Deliver(ctx context.Context, submission models.ContactSubmission) error
}

// LogContactDelivery is used when no mail provider is configured.
type LogContactDelivery struct {
	logger zerolog.Logger
}

// NewLogContactDelivery constructs a logging provider.
func NewLogContactDelivery(logger zerolog.Logger) *LogContactDelivery {
	return &LogContactDelivery{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

// Deliver logs the submission and reports success.
func (l *LogContactDelivery) Deliver(ctx context.Context, submission models.ContactSubmission) error {
	l.logger.Info().
		Str("reference_id", submission.ReferenceID).
		Str("course", submission.CourseOfInterest).
		Msg("contact submission delivered to log")
	return nil
}

// MailSender is satisfied by sendgridmail.Mailer.
type MailSender interface {
	Send(ctx context.Context, msg sendgridmail.Message) error
}

// MailContactDelivery e-mails every submission to the academy inbox.
type MailContactDelivery struct {
	sender MailSender
	inbox  string
}

// NewMailContactDelivery constructs a delivery that writes to inbox.
func NewMailContactDelivery(sender MailSender, inbox string) *MailContactDelivery {
	return &MailContactDelivery{sender: sender, inbox: inbox}
}

// Deliver sends the enquiry with the visitor as reply-to.
func (d *MailContactDelivery) Deliver(ctx context.Context, submission models.ContactSubmission) error {
	return d.sender.Send(ctx, sendgridmail.Message{
		ToAddress:    d.inbox,
		ReplyToName:  submission.Name,
		ReplyToEmail: submission.Email,
		Subject:      contactSubject(submission),
		Text:         contactBody(submission),
	})
}

func contactSubject(submission models.ContactSubmission) string {
	return fmt.Sprintf("Nueva consulta de %s", submission.Name)
}

func contactBody(submission models.ContactSubmission) string {
	course := submission.CourseOfInterest
	if strings.TrimSpace(course) == "" {
		course = "No especificado"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Nombre: %s\n", submission.Name)
	fmt.Fprintf(&b, "Email: %s\n", submission.Email)
	fmt.Fprintf(&b, "Teléfono: %s\n", submission.Phone)
	fmt.Fprintf(&b, "Curso de interés: %s\n\n", course)
	fmt.Fprintf(&b, "Mensaje:\n%s\n", submission.Message)
	return b.String()
}
