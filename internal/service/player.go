package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/HadiRehman/NLSA-USA/internal/constants"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"
	"github.com/HadiRehman/NLSA-USA/internal/notify"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const notificationWarning = "Player updated but the notification email could not be sent"

type PlayerService struct {
	players  PlayerStore
	notifier Notifier
	renderer CertificateRenderer
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

func NewPlayerService(players PlayerStore, notifier Notifier, renderer CertificateRenderer, m *metrics.Metrics, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		players:  players,
		notifier: notifier,
		renderer: renderer,
		metrics:  m,
		logger:   logger,
	}
}

// UpsertResult describes what an upsert did. Warning is set when the record
// was saved but its notification could not be delivered.
type UpsertResult struct {
	Player   *domain.Player
	Created  bool
	Notified notify.Kind
	Warning  string
}

// Upsert creates a player when in carries no ID and otherwise merges in into
// the stored record. Validation runs before anything is written; the status
// email goes out only after the write succeeds.
func (s *PlayerService) Upsert(ctx context.Context, in domain.PlayerPatch) (*UpsertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if in.ID == "" {
		return s.create(ctx, in)
	}
	return s.update(ctx, in)
}

func (s *PlayerService) create(ctx context.Context, in domain.PlayerPatch) (*UpsertResult, error) {
	p, err := domain.NewPlayer(in)
	if err != nil {
		s.metrics.Upserts.WithLabelValues("rejected").Inc()
		return nil, err
	}

	created, err := s.players.Create(ctx, p)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create player")
		return nil, err
	}

	s.metrics.Upserts.WithLabelValues("created").Inc()
	s.logger.Info().Str("player_id", created.ID).Msg("player created")
	return &UpsertResult{Player: created, Created: true}, nil
}

func (s *PlayerService) update(ctx context.Context, in domain.PlayerPatch) (*UpsertResult, error) {
	existing, err := s.players.Get(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateTransition(existing, in.Status, in.StatsPatch); err != nil {
		s.metrics.Upserts.WithLabelValues("rejected").Inc()
		s.logger.Info().Err(err).Str("player_id", in.ID).Msg("upsert rejected")
		return nil, err
	}

	delta, stats, err := domain.Merge(existing, in)
	if err != nil {
		s.metrics.Upserts.WithLabelValues("rejected").Inc()
		return nil, err
	}

	updated, err := s.players.Update(ctx, in.ID, delta, stats)
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", in.ID).Msg("failed to update player")
		return nil, err
	}
	s.metrics.Upserts.WithLabelValues("updated").Inc()

	t := domain.TransitionFor(existing, in.Status)
	if t.Changed() {
		s.metrics.Transitions.WithLabelValues(string(t.From), string(t.To)).Inc()
		s.logger.Info().
			Str("player_id", in.ID).
			Str("from", string(t.From)).
			Str("status", string(t.To)).
			Msg("player status changed")
	}

	result := &UpsertResult{Player: updated}
	recipient := notify.Recipient(existing.Email, in.Email.Or(""))
	kind, err := s.notifier.Dispatch(ctx, t, *updated, recipient)
	result.Notified = kind
	if err != nil {
		s.logger.Warn().Err(err).Str("player_id", in.ID).Str("recipient", recipient).Msg("notification failed after update")
		result.Warning = notificationWarning
	}
	return result, nil
}

// List returns every player, newest first.
func (s *PlayerService) List(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.players.List(ctx)
}

func (s *PlayerService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("player_id", id).Msg("player deleted")
	return nil
}

// Certificate renders the PDF for an approved player.
func (s *PlayerService) Certificate(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.approved(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdf, err := s.renderer.Render(*p)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render certificate for %s: %w", id, err)
	}
	s.metrics.Certificates.Inc()
	return pdf, s.renderer.Filename(*p), nil
}

// SendCertificate emails an approved player's certificate again.
func (s *PlayerService) SendCertificate(ctx context.Context, id string) error {
	p, err := s.approved(ctx, id)
	if err != nil {
		return err
	}

	err = s.notifier.SendCertificate(ctx, *p, p.Email)
	if errors.Is(err, notify.ErrNoRecipient) {
		return &domain.ValidationError{Reason: "player has no email address", Fields: []string{"Email"}}
	}
	return err
}

type BulkSendResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// SendAllCertificates mails every approved player, a few at a time. One
// failed delivery does not stop the others.
func (s *PlayerService) SendAllCertificates(ctx context.Context) (*BulkSendResult, error) {
	players, err := s.players.ListByStatus(ctx, domain.StatusApproved)
	if err != nil {
		return nil, err
	}

	var sent, failed, skipped atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.BulkSendConcurrency)

	for _, p := range players {
		if p.Email == "" {
			skipped.Add(1)
			continue
		}
		g.Go(func() error {
			if err := s.notifier.SendCertificate(gCtx, p, p.Email); err != nil {
				failed.Add(1)
				s.logger.Warn().Err(err).Str("player_id", p.ID).Msg("bulk certificate send failed")
				return nil
			}
			sent.Add(1)
			return nil
		})
	}
	g.Wait()

	res := &BulkSendResult{Sent: int(sent.Load()), Failed: int(failed.Load()), Skipped: int(skipped.Load())}
	s.logger.Info().
		Int("sent", res.Sent).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Msg("bulk certificate send finished")
	return res, nil
}

func (s *PlayerService) approved(ctx context.Context, id string) (*domain.Player, error) {
	p, err := s.players.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusApproved {
		return nil, &domain.ValidationError{Reason: "certificate is only available for approved players"}
	}
	return p, nil
}
