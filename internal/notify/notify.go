// Package notify emails players when their registration status changes.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/mailer"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"

	"github.com/rs/zerolog"
)

type Kind string

const (
	KindNone        Kind = ""
	KindCertificate Kind = "certificate"
	KindRejection   Kind = "rejection"
)

// ErrNoRecipient is returned when neither the stored record nor the payload
// carries an email address.
var ErrNoRecipient = errors.New("no recipient email address")

// DeliveryError wraps a failed render or send.
type DeliveryError struct {
	Kind      Kind
	Recipient string
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("%s email to %s failed: %v", e.Kind, e.Recipient, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

type Renderer interface {
	Render(p domain.Player) ([]byte, error)
	Filename(p domain.Player) string
}

// KindFor returns the notification a persisted transition triggers. Only a
// change of status notifies; re-saving the same status sends nothing.
func KindFor(t domain.Transition) Kind {
	if !t.Changed() {
		return KindNone
	}
	switch t.To {
	case domain.StatusApproved:
		return KindCertificate
	case domain.StatusRejected:
		return KindRejection
	}
	return KindNone
}

// Recipient prefers the stored address and falls back to the payload's.
func Recipient(stored, incoming string) string {
	if stored != "" {
		return stored
	}
	return incoming
}

type Dispatcher struct {
	renderer Renderer
	sender   mailer.Sender
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewDispatcher(cfg *config.Config, renderer Renderer, sender mailer.Sender, m *metrics.Metrics, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		renderer: renderer,
		sender:   sender,
		timeout:  cfg.Mail.Timeout,
		metrics:  m,
		logger:   logger.With().Str("component", "notify").Logger(),
	}
}

// Dispatch sends whatever t calls for to recipient. Delivery runs on a
// context detached from ctx's cancellation and bounded by the mail timeout,
// so a client disconnect cannot abort a send for an already stored change.
func (d *Dispatcher) Dispatch(ctx context.Context, t domain.Transition, p domain.Player, recipient string) (Kind, error) {
	kind := KindFor(t)
	if kind == KindNone {
		return KindNone, nil
	}

	logger := d.log(ctx).With().Str("player_id", p.ID).Str("kind", string(kind)).Logger()
	if recipient == "" {
		d.metrics.Notifications.WithLabelValues(string(kind), "skipped").Inc()
		logger.Warn().Msg("no email address on record, notification skipped")
		return kind, nil
	}

	var err error
	switch kind {
	case KindCertificate:
		err = d.SendCertificate(ctx, p, recipient)
	case KindRejection:
		err = d.sendRejection(ctx, p, recipient)
	}
	return kind, err
}

// SendCertificate renders p's certificate and mails it.
func (d *Dispatcher) SendCertificate(ctx context.Context, p domain.Player, recipient string) error {
	if recipient == "" {
		return ErrNoRecipient
	}

	pdf, err := d.renderer.Render(p)
	if err != nil {
		d.metrics.Notifications.WithLabelValues(string(KindCertificate), "failed").Inc()
		return &DeliveryError{Kind: KindCertificate, Recipient: recipient, Err: err}
	}
	d.metrics.Certificates.Inc()

	return d.deliver(ctx, KindCertificate, recipient, CertificateMessage(p, recipient, d.renderer.Filename(p), pdf))
}

func (d *Dispatcher) sendRejection(ctx context.Context, p domain.Player, recipient string) error {
	return d.deliver(ctx, KindRejection, recipient, RejectionMessage(p, recipient))
}

func (d *Dispatcher) deliver(ctx context.Context, kind Kind, recipient string, msg mailer.Message) error {
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, msg); err != nil {
		d.metrics.Notifications.WithLabelValues(string(kind), "failed").Inc()
		d.log(ctx).Error().Err(err).Str("kind", string(kind)).Str("to", recipient).Msg("notification failed")
		return &DeliveryError{Kind: kind, Recipient: recipient, Err: err}
	}

	d.metrics.Notifications.WithLabelValues(string(kind), "sent").Inc()
	d.log(ctx).Info().Str("kind", string(kind)).Str("to", recipient).Msg("notification sent")
	return nil
}

// log prefers the request-scoped logger set by the RequestID middleware.
func (d *Dispatcher) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &d.logger
}
