// Package docstore persists players, users and sessions in Cloud Firestore.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/domain"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	playersCollection  = "players"
	usersCollection    = "users"
	sessionsCollection = "sessions"
)

func NewClient(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*firestore.Client, error) {
	var opts []option.ClientOption
	if host := os.Getenv("FIRESTORE_EMULATOR_HOST"); host != "" {
		opts = append(opts, option.WithoutAuthentication())
		logger.Info().Str("host", host).Msg("connecting to firestore emulator")
	}

	client, err := firestore.NewClient(ctx, cfg.FirestoreProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	logger.Info().Str("project", cfg.FirestoreProjectID).Msg("firestore client ready")
	return client, nil
}

// mapError turns a gRPC NotFound into domain.ErrNotFound.
func mapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicate) {
		return err
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Ping issues a cheap read to confirm the backend answers.
func Ping(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collection(playersCollection).Limit(1).Documents(ctx).GetAll()
	return mapError(err, "failed to reach firestore")
}
