package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StoreSQLite    = "sqlite"
	StoreFirestore = "firestore"

	MailSMTP = "smtp"
	MailHTTP = "http"
	MailLog  = "log"
)

type Config struct {
	ServerPort  string   `env:"SERVER_PORT" envDefault:"4000"`
	APIKey      string   `env:"API_KEY"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`

	StoreDriver        string `env:"STORE_DRIVER" envDefault:"sqlite"`
	DBPath             string `env:"DB_PATH" envDefault:"league.db"`
	FirestoreProjectID string `env:"FIRESTORE_PROJECT_ID"`

	RedisURL   string        `env:"REDIS_URL"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"5h"`

	Mail MailConfig

	OrganizationName string `env:"ORGANIZATION_NAME" envDefault:"National League of Sports Athletes"`
}

type MailConfig struct {
	Transport string        `env:"MAIL_TRANSPORT" envDefault:"log"`
	From      string        `env:"MAIL_FROM" envDefault:"no-reply@localhost"`
	Timeout   time.Duration `env:"MAIL_TIMEOUT" envDefault:"15s"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`

	APIURL string `env:"MAIL_API_URL" envDefault:"https://api.resend.com/emails"`
	APIKey string `env:"MAIL_API_KEY"`
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("store_driver", cfg.StoreDriver).
		Str("db_path", cfg.DBPath).
		Str("mail_transport", cfg.Mail.Transport).
		Bool("redis_sessions", cfg.RedisURL != "").
		Dur("session_ttl", cfg.SessionTTL).
		Str("log_level", cfg.LogLevel).
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY is required")
	}

	switch c.StoreDriver {
	case StoreSQLite:
	case StoreFirestore:
		if c.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required when STORE_DRIVER=firestore")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	switch c.Mail.Transport {
	case MailLog:
	case MailSMTP:
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when MAIL_TRANSPORT=smtp")
		}
	case MailHTTP:
		if c.Mail.APIKey == "" {
			return fmt.Errorf("MAIL_API_KEY is required when MAIL_TRANSPORT=http")
		}
	default:
		return fmt.Errorf("unknown MAIL_TRANSPORT %q", c.Mail.Transport)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}
