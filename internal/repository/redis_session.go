package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const sessionKeyPrefix = "session:"

// RedisSessionRepository keeps one key per session and lets Redis expire
// them, so Purge has nothing to do.
type RedisSessionRepository struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func NewRedisSessionRepository(client *redis.Client, logger zerolog.Logger) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, logger: logger}
}

func (r *RedisSessionRepository) Start(ctx context.Context, s domain.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.Token, s.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

// End deletes the session key. Redis has already dropped expired keys.
func (r *RedisSessionRepository) End(ctx context.Context, token string, _ time.Time) error {
	n, err := r.client.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RedisSessionRepository) Active(ctx context.Context, _ time.Time) (int, error) {
	var count int
	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	return count, nil
}

func (r *RedisSessionRepository) Purge(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisSessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
