package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/HadiRehman/NLSA-USA/internal/config"

	"github.com/rs/zerolog"
	gomail "github.com/wneessen/go-mail"
)

type SMTPSender struct {
	cfg    config.MailConfig
	logger zerolog.Logger
}

func NewSMTPSender(cfg config.MailConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, logger: logger}
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.SMTPPort),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.SMTPUsername != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.SMTPUsername),
			gomail.WithPassword(s.cfg.SMTPPassword),
		)
	}

	client, err := gomail.NewClient(s.cfg.SMTPHost, opts...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	s.logger.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail sent")
	return nil
}

func (s *SMTPSender) build(msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	for _, a := range msg.Attachments {
		err := m.AttachReader(a.Filename, bytes.NewReader(a.Data),
			gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}
	return m, nil
}
