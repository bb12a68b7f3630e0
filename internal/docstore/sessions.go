package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
)

type sessionDoc struct {
	UserID    string    `firestore:"userId"`
	ExpiresAt time.Time `firestore:"expiresAt"`
	CreatedAt time.Time `firestore:"createdAt"`
}

// SessionStore keys session documents by token.
type SessionStore struct {
	client *firestore.Client
	logger zerolog.Logger
}

func NewSessionStore(client *firestore.Client, logger zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, logger: logger}
}

func (s *SessionStore) col() *firestore.CollectionRef {
	return s.client.Collection(sessionsCollection)
}

func (s *SessionStore) Start(ctx context.Context, sess domain.Session) error {
	_, err := s.col().Doc(sess.Token).Set(ctx, sessionDoc{
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt.UTC(),
		CreatedAt: sess.CreatedAt.UTC(),
	})
	return mapError(err, "failed to store session")
}

// End deletes a live session. Expired documents are left for Purge and
// reported as not found.
func (s *SessionStore) End(ctx context.Context, token string, now time.Time) error {
	ref := s.col().Doc(token)
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		var doc sessionDoc
		if err := snap.DataTo(&doc); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		if !doc.ExpiresAt.After(now) {
			return domain.ErrNotFound
		}
		return tx.Delete(ref)
	})
	return mapError(err, "failed to delete session")
}

func (s *SessionStore) Active(ctx context.Context, now time.Time) (int, error) {
	snaps, err := s.col().Where("expiresAt", ">", now.UTC()).Documents(ctx).GetAll()
	if err != nil {
		return 0, mapError(err, "failed to count sessions")
	}
	return len(snaps), nil
}

func (s *SessionStore) Purge(ctx context.Context, now time.Time) (int, error) {
	snaps, err := s.col().Where("expiresAt", "<=", now.UTC()).Documents(ctx).GetAll()
	if err != nil {
		return 0, mapError(err, "failed to find expired sessions")
	}
	if len(snaps) == 0 {
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	for _, snap := range snaps {
		if _, err := bw.Delete(snap.Ref); err != nil {
			bw.End()
			return 0, mapError(err, "failed to queue session delete")
		}
	}
	bw.End()

	s.logger.Debug().Int("purged", len(snaps)).Msg("expired sessions removed")
	return len(snaps), nil
}
