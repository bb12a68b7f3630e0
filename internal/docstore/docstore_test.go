package docstore

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"
	"github.com/HadiRehman/NLSA-USA/internal/optional"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "noop"))
	assert.ErrorIs(t, mapError(status.Error(codes.NotFound, "gone"), "get"), domain.ErrNotFound)
	assert.ErrorIs(t, mapError(domain.ErrDuplicate, "create"), domain.ErrDuplicate)

	err := mapError(errors.New("boom"), "failed to get player %s", "p1")
	assert.EqualError(t, err, "failed to get player p1: boom")
}

func TestToPlayerDocStats(t *testing.T) {
	stats := domain.EmptyStats()
	v := domain.StatValue("3")
	stats[domain.StatHR] = &v

	doc := toPlayerDoc(&domain.Player{Status: domain.StatusApproved, Stats: stats})

	assert.Equal(t, "Approved", doc.Status)
	assert.Len(t, doc.Stats, len(domain.AllStats))
	require.NotNil(t, doc.Stats["HR"])
	assert.Equal(t, "3", *doc.Stats["HR"])
	assert.Nil(t, doc.Stats["ERA"])
}

// Runs only against the Firestore emulator.
func TestPlayerStoreEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, &config.Config{FirestoreProjectID: "league-test"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	store := NewPlayerStore(client, zerolog.Nop())
	created, err := store.Create(ctx, &domain.Player{
		PlayerName: gofakeit.Name(),
		Email:      gofakeit.Email(),
		Status:     domain.StatusPending,
		Stats:      domain.EmptyStats(),
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	updated, err := store.Update(ctx, created.ID, domain.ProfileDelta{CityLocation: optional.Some("Reno")}, created.Stats)
	require.NoError(t, err)
	assert.Equal(t, "Reno", updated.CityLocation)

	require.NoError(t, store.Delete(ctx, created.ID))
	assert.ErrorIs(t, store.Delete(ctx, created.ID), domain.ErrNotFound)
	_, err = store.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSessionStoreEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, &config.Config{FirestoreProjectID: "league-test"}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	store := NewSessionStore(client, zerolog.Nop())
	now := time.Now()
	live, old := gofakeit.UUID(), gofakeit.UUID()
	require.NoError(t, store.Start(ctx, domain.Session{Token: live, UserID: "u1", ExpiresAt: now.Add(time.Hour), CreatedAt: now}))
	require.NoError(t, store.Start(ctx, domain.Session{Token: old, UserID: "u1", ExpiresAt: now.Add(-time.Minute), CreatedAt: now}))

	assert.ErrorIs(t, store.End(ctx, old, now), domain.ErrNotFound)
	require.NoError(t, store.End(ctx, live, now))
	assert.ErrorIs(t, store.End(ctx, live, now), domain.ErrNotFound)
}
