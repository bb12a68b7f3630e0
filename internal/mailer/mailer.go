// Package mailer delivers outbound email through SMTP, an HTTP email API or
// the application log.
package mailer

import (
	"context"
	"fmt"

	"github.com/HadiRehman/NLSA-USA/internal/config"

	"github.com/rs/zerolog"
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New picks the transport named by MAIL_TRANSPORT.
func New(cfg *config.Config, logger zerolog.Logger) (Sender, error) {
	logger = logger.With().Str("component", "mailer").Str("transport", cfg.Mail.Transport).Logger()

	switch cfg.Mail.Transport {
	case config.MailSMTP:
		return NewSMTPSender(cfg.Mail, logger), nil
	case config.MailHTTP:
		return NewHTTPSender(cfg.Mail, logger), nil
	case config.MailLog:
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
	}
}
