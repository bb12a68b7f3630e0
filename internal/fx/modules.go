package fx

import (
	"context"

	"github.com/HadiRehman/NLSA-USA/internal/certificate"
	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/database"
	"github.com/HadiRehman/NLSA-USA/internal/db"
	"github.com/HadiRehman/NLSA-USA/internal/docstore"
	"github.com/HadiRehman/NLSA-USA/internal/logger"
	"github.com/HadiRehman/NLSA-USA/internal/mailer"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"
	"github.com/HadiRehman/NLSA-USA/internal/notify"
	"github.com/HadiRehman/NLSA-USA/internal/repository"
	"github.com/HadiRehman/NLSA-USA/internal/scheduler"
	"github.com/HadiRehman/NLSA-USA/internal/server"
	"github.com/HadiRehman/NLSA-USA/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Stores is the persistence backend chosen by STORE_DRIVER.
type Stores struct {
	fx.Out

	Players  service.PlayerStore
	Users    service.UserStore
	Sessions service.SessionStore
	Health   server.Pinger
}

func ProvideStores(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (Stores, error) {
	var stores Stores

	switch cfg.StoreDriver {
	case config.StoreFirestore:
		client, err := docstore.NewClient(context.Background(), cfg, logger)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.StopHook(client.Close))

		players := docstore.NewPlayerStore(client, logger)
		stores = Stores{
			Players:  players,
			Users:    docstore.NewUserStore(client, logger),
			Sessions: docstore.NewSessionStore(client, logger),
			Health:   players,
		}
	default:
		sqlDB, err := database.New(cfg, logger)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.StopHook(func() error {
			if err := sqlDB.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
				return err
			}
			return nil
		}))

		queries := db.New(sqlDB)
		players := repository.NewPlayerRepository(sqlDB, queries, logger)
		stores = Stores{
			Players:  players,
			Users:    repository.NewUserRepository(queries, logger),
			Sessions: repository.NewSessionRepository(queries, logger),
			Health:   players,
		}
	}

	if cfg.RedisURL != "" {
		client, err := repository.NewRedisClient(cfg)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.StopHook(client.Close))
		stores.Sessions = repository.NewRedisSessionRepository(client, logger)
		logger.Info().Msg("sessions tracked in redis")
	}

	return stores, nil
}

func ProvideScheduler(lc fx.Lifecycle, users *service.UserService, logger zerolog.Logger) (*scheduler.Scheduler, error) {
	s, err := scheduler.New(users, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			return s.Stop()
		},
	})
	return s, nil
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(ProvideStores),
	// metrics
	fx.Provide(metrics.NewRegistry),
	fx.Provide(metrics.New),
	// notifications
	fx.Provide(mailer.New),
	fx.Provide(fx.Annotate(
		certificate.NewRenderer,
		fx.As(new(notify.Renderer)),
		fx.As(new(service.CertificateRenderer)),
	)),
	fx.Provide(fx.Annotate(notify.NewDispatcher, fx.As(new(service.Notifier)))),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewUserService),
	fx.Provide(ProvideScheduler),
	// server
	fx.Provide(server.NewServer),
	fx.Invoke(func(*scheduler.Scheduler) {}),
)
