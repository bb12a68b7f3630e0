package docstore

import (
	"context"
	"slices"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
)

type playerDoc struct {
	SportCategory string             `firestore:"SportCategory"`
	PlayerName    string             `firestore:"PlayerName"`
	EventName     string             `firestore:"EventName"`
	EventDate     string             `firestore:"EventDate"`
	CityLocation  string             `firestore:"CityLocation"`
	Email         string             `firestore:"Email"`
	JerseyNumber  string             `firestore:"JerseyNumber"`
	DocumentFile  *string            `firestore:"DocumentFile"`
	VideoFile     *string            `firestore:"VideoFile"`
	Status        string             `firestore:"Status"`
	Stats         map[string]*string `firestore:"stats"`
	CreatedAt     time.Time          `firestore:"createdAt"`
	UpdatedAt     time.Time          `firestore:"updatedAt"`
}

type PlayerStore struct {
	client *firestore.Client
	logger zerolog.Logger
}

func NewPlayerStore(client *firestore.Client, logger zerolog.Logger) *PlayerStore {
	return &PlayerStore{client: client, logger: logger}
}

func (s *PlayerStore) col() *firestore.CollectionRef {
	return s.client.Collection(playersCollection)
}

func (s *PlayerStore) Create(ctx context.Context, p *domain.Player) (*domain.Player, error) {
	now := time.Now().UTC()
	created := *p
	created.CreatedAt = now
	created.UpdatedAt = now

	ref := s.col().NewDoc()
	if _, err := ref.Create(ctx, toPlayerDoc(&created)); err != nil {
		return nil, mapError(err, "failed to create player")
	}
	created.ID = ref.ID
	s.logger.Debug().Str("player_id", ref.ID).Msg("player document created")
	return &created, nil
}

func (s *PlayerStore) Get(ctx context.Context, id string) (*domain.Player, error) {
	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapError(err, "failed to get player %s", id)
	}
	return fromPlayerSnap(snap)
}

func (s *PlayerStore) List(ctx context.Context) ([]domain.Player, error) {
	snaps, err := s.col().OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "failed to list players")
	}
	return fromPlayerSnaps(snaps)
}

// ListByStatus sorts in memory so no composite index is needed.
func (s *PlayerStore) ListByStatus(ctx context.Context, st domain.Status) ([]domain.Player, error) {
	snaps, err := s.col().Where("Status", "==", string(st)).Documents(ctx).GetAll()
	if err != nil {
		return nil, mapError(err, "failed to list %s players", st)
	}
	players, err := fromPlayerSnaps(snaps)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(players, func(a, b domain.Player) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return players, nil
}

// Update reads, applies and writes the document in one transaction.
func (s *PlayerStore) Update(ctx context.Context, id string, delta domain.ProfileDelta, stats domain.Stats) (*domain.Player, error) {
	ref := s.col().Doc(id)
	var updated *domain.Player

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return mapError(err, "failed to read player %s", id)
		}
		p, err := fromPlayerSnap(snap)
		if err != nil {
			return err
		}

		delta.Apply(p)
		p.Stats = stats
		p.UpdatedAt = time.Now().UTC()
		updated = p
		return tx.Set(ref, toPlayerDoc(p))
	})
	if err != nil {
		return nil, mapError(err, "failed to update player %s", id)
	}
	return updated, nil
}

func (s *PlayerStore) Delete(ctx context.Context, id string) error {
	_, err := s.col().Doc(id).Delete(ctx, firestore.Exists)
	return mapError(err, "failed to delete player %s", id)
}

func (s *PlayerStore) Ping(ctx context.Context) error {
	return Ping(ctx, s.client)
}

func toPlayerDoc(p *domain.Player) playerDoc {
	stats := make(map[string]*string, len(p.Stats))
	for f, v := range p.Stats {
		if v == nil {
			stats[string(f)] = nil
			continue
		}
		s := string(*v)
		stats[string(f)] = &s
	}
	return playerDoc{
		SportCategory: p.SportCategory,
		PlayerName:    p.PlayerName,
		EventName:     p.EventName,
		EventDate:     p.EventDate,
		CityLocation:  p.CityLocation,
		Email:         p.Email,
		JerseyNumber:  p.JerseyNumber,
		DocumentFile:  p.DocumentFile,
		VideoFile:     p.VideoFile,
		Status:        string(p.Status),
		Stats:         stats,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func fromPlayerSnap(snap *firestore.DocumentSnapshot) (*domain.Player, error) {
	var doc playerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, mapError(err, "failed to decode player %s", snap.Ref.ID)
	}

	stats := make(domain.Stats, len(doc.Stats))
	for k, v := range doc.Stats {
		if v == nil {
			stats[domain.StatField(k)] = nil
			continue
		}
		sv := domain.StatValue(*v)
		stats[domain.StatField(k)] = &sv
	}

	return &domain.Player{
		ID:            snap.Ref.ID,
		SportCategory: doc.SportCategory,
		PlayerName:    doc.PlayerName,
		EventName:     doc.EventName,
		EventDate:     doc.EventDate,
		CityLocation:  doc.CityLocation,
		Email:         doc.Email,
		JerseyNumber:  doc.JerseyNumber,
		DocumentFile:  doc.DocumentFile,
		VideoFile:     doc.VideoFile,
		Status:        domain.Status(doc.Status),
		Stats:         stats,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func fromPlayerSnaps(snaps []*firestore.DocumentSnapshot) ([]domain.Player, error) {
	players := make([]domain.Player, 0, len(snaps))
	for _, snap := range snaps {
		p, err := fromPlayerSnap(snap)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	return players, nil
}
