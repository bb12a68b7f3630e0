package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/db"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/rs/zerolog"
)

// SessionRepository tracks admin sessions in the sessions table. Expired rows
// are ignored by Active and removed by Purge.
type SessionRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewSessionRepository(queries *db.Queries, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{queries: queries, logger: logger}
}

func (r *SessionRepository) Start(ctx context.Context, s domain.Session) error {
	err := r.queries.InsertSession(ctx, db.InsertSessionParams{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt.Unix(),
		CreatedAt: s.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// End removes a live session. An expired row is left for Purge and reported
// as not found.
func (r *SessionRepository) End(ctx context.Context, token string, now time.Time) error {
	n, err := r.queries.DeleteSession(ctx, db.DeleteSessionParams{Token: token, ExpiresAt: now.Unix()})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SessionRepository) Active(ctx context.Context, now time.Time) (int, error) {
	n, err := r.queries.CountActiveSessions(ctx, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to count sessions: %w", err)
	}
	return int(n), nil
}

func (r *SessionRepository) Purge(ctx context.Context, now time.Time) (int, error) {
	n, err := r.queries.DeleteExpiredSessions(ctx, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	if n > 0 {
		r.logger.Debug().Int64("purged", n).Msg("expired sessions removed")
	}
	return int(n), nil
}
