package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/db"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate player id: %w", err)
	}

	stats, err := json.Marshal(player.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}

	now := time.Now().UTC()
	err = r.queries.InsertPlayer(ctx, db.InsertPlayerParams{
		ID:            id,
		SportCategory: player.SportCategory,
		PlayerName:    player.PlayerName,
		EventName:     player.EventName,
		EventDate:     player.EventDate,
		CityLocation:  player.CityLocation,
		Email:         player.Email,
		JerseyNumber:  player.JerseyNumber,
		DocumentFile:  nullString(player.DocumentFile),
		VideoFile:     nullString(player.VideoFile),
		Status:        string(player.Status),
		Stats:         string(stats),
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert player: %w", err)
	}

	created := *player
	created.ID = id
	created.CreatedAt = now
	created.UpdatedAt = now
	r.logger.Debug().Str("player_id", id).Msg("player inserted")
	return &created, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	return getPlayer(ctx, r.queries, id)
}

func getPlayer(ctx context.Context, q *db.Queries, id string) (*domain.Player, error) {
	row, err := q.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", id, err)
	}
	return toDomainPlayer(row)
}

func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return toDomainPlayers(rows)
}

func (r *PlayerRepository) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayersByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s players: %w", status, err)
	}
	return toDomainPlayers(rows)
}

// Update applies delta and replaces the stats document inside one transaction,
// so concurrent writers never interleave a read and a write of the same row.
func (r *PlayerRepository) Update(ctx context.Context, id string, delta domain.ProfileDelta, stats domain.Stats) (*domain.Player, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	player, err := getPlayer(ctx, qtx, id)
	if err != nil {
		return nil, err
	}

	delta.Apply(player)
	player.Stats = stats
	player.UpdatedAt = time.Now().UTC()

	encoded, err := json.Marshal(player.Stats)
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}

	err = qtx.UpdatePlayer(ctx, db.UpdatePlayerParams{
		SportCategory: player.SportCategory,
		PlayerName:    player.PlayerName,
		EventName:     player.EventName,
		EventDate:     player.EventDate,
		CityLocation:  player.CityLocation,
		Email:         player.Email,
		JerseyNumber:  player.JerseyNumber,
		DocumentFile:  nullString(player.DocumentFile),
		VideoFile:     nullString(player.VideoFile),
		Status:        string(player.Status),
		Stats:         string(encoded),
		UpdatedAt:     player.UpdatedAt,
		ID:            id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit player update: %w", err)
	}
	return player, nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeletePlayer(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete player %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlayerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func toDomainPlayer(p db.Player) (*domain.Player, error) {
	stats := domain.Stats{}
	if p.Stats != "" {
		if err := json.Unmarshal([]byte(p.Stats), &stats); err != nil {
			return nil, fmt.Errorf("failed to decode stats for player %s: %w", p.ID, err)
		}
	}

	return &domain.Player{
		ID:            p.ID,
		SportCategory: p.SportCategory,
		PlayerName:    p.PlayerName,
		EventName:     p.EventName,
		EventDate:     p.EventDate,
		CityLocation:  p.CityLocation,
		Email:         p.Email,
		JerseyNumber:  p.JerseyNumber,
		DocumentFile:  stringPtr(p.DocumentFile),
		VideoFile:     stringPtr(p.VideoFile),
		Status:        domain.Status(p.Status),
		Stats:         stats,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}, nil
}

func toDomainPlayers(rows []db.Player) ([]domain.Player, error) {
	result := make([]domain.Player, 0, len(rows))
	for _, row := range rows {
		p, err := toDomainPlayer(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
