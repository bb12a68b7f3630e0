package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/mailer"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	SendFunc func(ctx context.Context, msg mailer.Message) error
	sent     []mailer.Message
}

func (f *fakeSender) Send(ctx context.Context, msg mailer.Message) error {
	f.sent = append(f.sent, msg)
	if f.SendFunc != nil {
		return f.SendFunc(ctx, msg)
	}
	return nil
}

type fakeRenderer struct {
	RenderFunc func(p domain.Player) ([]byte, error)
}

func (f fakeRenderer) Render(p domain.Player) ([]byte, error) {
	if f.RenderFunc != nil {
		return f.RenderFunc(p)
	}
	return []byte("%PDF-fake"), nil
}

func (fakeRenderer) Filename(p domain.Player) string { return "certificate-" + p.ID + ".pdf" }

func newDispatcher(s mailer.Sender, r Renderer) *Dispatcher {
	cfg := &config.Config{Mail: config.MailConfig{Timeout: time.Second}}
	return NewDispatcher(cfg, r, s, metrics.Nop(), zerolog.Nop())
}

func player() domain.Player {
	return domain.Player{ID: "p1", PlayerName: "Sam Lee", SportCategory: "Softball", EventName: "Fall Open"}
}

func TestKindFor(t *testing.T) {
	tests := []struct {
		name string
		t    domain.Transition
		want Kind
	}{
		{"pending to approved", domain.Transition{From: domain.StatusPending, To: domain.StatusApproved}, KindCertificate},
		{"rejected to approved", domain.Transition{From: domain.StatusRejected, To: domain.StatusApproved}, KindCertificate},
		{"pending to rejected", domain.Transition{From: domain.StatusPending, To: domain.StatusRejected}, KindRejection},
		{"approved resaved", domain.Transition{From: domain.StatusApproved, To: domain.StatusApproved}, KindNone},
		{"rejected resaved", domain.Transition{From: domain.StatusRejected, To: domain.StatusRejected}, KindNone},
		{"back to pending", domain.Transition{From: domain.StatusApproved, To: domain.StatusPending}, KindNone},
		{"no status", domain.Transition{From: domain.StatusPending}, KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindFor(tt.t))
		})
	}
}

func TestRecipient(t *testing.T) {
	assert.Equal(t, "stored@example.com", Recipient("stored@example.com", "new@example.com"))
	assert.Equal(t, "new@example.com", Recipient("", "new@example.com"))
	assert.Equal(t, "", Recipient("", ""))
}

func TestDispatchCertificate(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s, fakeRenderer{})

	kind, err := d.Dispatch(context.Background(),
		domain.Transition{From: domain.StatusPending, To: domain.StatusApproved}, player(), "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, KindCertificate, kind)

	require.Len(t, s.sent, 1)
	msg := s.sent[0]
	assert.Equal(t, "sam@example.com", msg.To)
	assert.Equal(t, "Your Softball Certificate", msg.Subject)
	assert.Contains(t, msg.Body, "Dear Sam Lee")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "certificate-p1.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
}

func TestDispatchRejection(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s, fakeRenderer{RenderFunc: func(domain.Player) ([]byte, error) {
		t.Fatal("rejection must not render a certificate")
		return nil, nil
	}})

	kind, err := d.Dispatch(context.Background(),
		domain.Transition{From: domain.StatusPending, To: domain.StatusRejected}, player(), "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, KindRejection, kind)
	require.Len(t, s.sent, 1)
	assert.Empty(t, s.sent[0].Attachments)
	assert.Contains(t, s.sent[0].Body, "rejected")
}

func TestDispatchNoChangeSendsNothing(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s, fakeRenderer{})

	kind, err := d.Dispatch(context.Background(),
		domain.Transition{From: domain.StatusApproved, To: domain.StatusApproved}, player(), "sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, KindNone, kind)
	assert.Empty(t, s.sent)
}

func TestDispatchWithoutRecipientSkips(t *testing.T) {
	s := &fakeSender{}
	d := newDispatcher(s, fakeRenderer{})

	kind, err := d.Dispatch(context.Background(),
		domain.Transition{From: domain.StatusPending, To: domain.StatusApproved}, player(), "")
	require.NoError(t, err)
	assert.Equal(t, KindCertificate, kind)
	assert.Empty(t, s.sent)
}

func TestDispatchSurvivesCancelledRequest(t *testing.T) {
	s := &fakeSender{SendFunc: func(ctx context.Context, _ mailer.Message) error {
		return ctx.Err()
	}}
	d := newDispatcher(s, fakeRenderer{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Dispatch(ctx, domain.Transition{From: domain.StatusPending, To: domain.StatusRejected}, player(), "sam@example.com")
	assert.NoError(t, err)
}

func TestDispatchDeliveryError(t *testing.T) {
	boom := errors.New("smtp down")
	d := newDispatcher(&fakeSender{SendFunc: func(context.Context, mailer.Message) error { return boom }}, fakeRenderer{})

	_, err := d.Dispatch(context.Background(),
		domain.Transition{From: domain.StatusPending, To: domain.StatusApproved}, player(), "sam@example.com")

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, KindCertificate, de.Kind)
	assert.ErrorIs(t, err, boom)
}

func TestSendCertificateRequiresRecipient(t *testing.T) {
	d := newDispatcher(&fakeSender{}, fakeRenderer{})
	assert.ErrorIs(t, d.SendCertificate(context.Background(), player(), ""), ErrNoRecipient)
}
