package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "secret")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.ServerPort)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "league.db", cfg.DBPath)
	assert.Equal(t, MailLog, cfg.Mail.Transport)
	assert.Equal(t, 15*time.Second, cfg.Mail.Timeout)
	assert.Equal(t, 5*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing api key",
			env:  map[string]string{"API_KEY": ""},
		},
		{
			name: "firestore without project",
			env:  map[string]string{"API_KEY": "k", "STORE_DRIVER": "firestore"},
		},
		{
			name: "unknown store",
			env:  map[string]string{"API_KEY": "k", "STORE_DRIVER": "mongo"},
		},
		{
			name: "smtp without host",
			env:  map[string]string{"API_KEY": "k", "MAIL_TRANSPORT": "smtp"},
		},
		{
			name: "http mail without key",
			env:  map[string]string{"API_KEY": "k", "MAIL_TRANSPORT": "http"},
		},
		{
			name: "bad log level",
			env:  map[string]string{"API_KEY": "k", "LOG_LEVEL": "loud"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(zerolog.Nop())
			assert.Error(t, err)
		})
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_KEY", "secret")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("MAIL_TRANSPORT", "smtp")
	t.Setenv("SMTP_HOST", "smtp.test")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 2525, cfg.Mail.SMTPPort)
	assert.Equal(t, "smtp.test", cfg.Mail.SMTPHost)
}
