package server

import (
	"context"
	"net/http"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"
	"github.com/HadiRehman/NLSA-USA/internal/constants"
	"github.com/HadiRehman/NLSA-USA/internal/metrics"
	"github.com/HadiRehman/NLSA-USA/internal/middleware"
	"github.com/HadiRehman/NLSA-USA/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	players  *service.PlayerService
	users    *service.UserService
	health   Pinger
	registry *prometheus.Registry
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewServer(
	players *service.PlayerService,
	users *service.UserService,
	health Pinger,
	registry *prometheus.Registry,
	cfg *config.Config,
	logger zerolog.Logger,
) *Server {
	return &Server{
		players:  players,
		users:    users,
		health:   health,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(s.registry))

	// The console opens certificates in a new tab, so the key may ride in the query.
	r.With(middleware.APIKey(s.cfg.APIKey, true)).Get("/certificate/{id}", s.viewCertificate)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(s.cfg.APIKey, false))
		r.Use(chimw.Timeout(constants.RequestTimeout))

		r.Post("/addplayer", s.upsertPlayer)
		r.Get("/getplayers", s.listPlayers)
		r.Delete("/deleteplayer/{id}", s.deletePlayer)
		r.Post("/send-certificate", s.sendCertificate)
		r.Post("/send-certificates", s.sendAllCertificates)
		r.Get("/players/export", s.exportPlayers)

		r.Post("/adduser", s.addUser)
		r.Get("/getusers", s.listUsers)
		r.Post("/login", s.login)
		r.Post("/logout", s.logout)
		r.Get("/getactiveusers", s.activeUsers)
		r.Put("/updateuser", s.updateUser)
		r.Delete("/deleteuser/{id}", s.deleteUser)
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.HealthTimeout)
	defer cancel()

	start := time.Now()
	if err := s.health.Ping(ctx); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"latency_ms": time.Since(start).Milliseconds(),
	})
}
