// Package sendgridmail sends plain text e-mail through the SendGrid v3 API.
package sendgridmail

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultHost = "https://api.sendgrid.com"
	endpoint    = "/v3/mail/send"
)

// Config contains the credentials and sender identity.
type Config struct {
	APIKey      string
	FromName    string
	FromAddress string
	Host        string
}

// Message is a single plain text e-mail.
type Message struct {
	ToName       string
	ToAddress    string
	ReplyToName  string
	ReplyToEmail string
	Subject      string
	Text         string
}

// Mailer delivers messages using SendGrid.
type Mailer struct {
	key    string
	host   string
	from   *sgmail.Email
	logger zerolog.Logger
}

// New constructs a mailer. Host defaults to the public SendGrid API.
func New(cfg Config, logger zerolog.Logger) (*Mailer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key must be provided")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("sendgrid from address must be provided")
	}
	host := strings.TrimRight(cfg.Host, "/")
	if host == "" {
		host = defaultHost
	}

	return &Mailer{
		key:    cfg.APIKey,
		host:   host,
		from:   sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		logger: logger.With().Str("component", "sendgrid").Logger(),
	}, nil
}

// Send posts the message and fails on transport errors or non-2xx responses.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.ToAddress == "" {
		return fmt.Errorf("recipient address must be provided")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	req := sendgrid.GetRequest(m.key, endpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(m.prepare(msg))

	res, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d", res.StatusCode)
	}

	m.logger.Debug().Int("status", res.StatusCode).Str("subject", msg.Subject).Msg("mail accepted by sendgrid")
	return nil
}

func (m *Mailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToAddress))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)
	if msg.ReplyToEmail != "" {
		mail.SetReplyTo(sgmail.NewEmail(msg.ReplyToName, msg.ReplyToEmail))
	}
	mail.AddContent(sgmail.NewContent("text/plain", msg.Text))
	return mail
}
