package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mailConfig(url string) config.MailConfig {
	return config.MailConfig{
		Transport: config.MailHTTP,
		From:      "league@example.com",
		Timeout:   5 * time.Second,
		APIURL:    url,
		APIKey:    "re_test",
	}
}

func TestHTTPSenderSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Ratelimit-Remaining", "7")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	s := NewHTTPSender(mailConfig(srv.URL), zerolog.Nop())
	err := s.Send(context.Background(), Message{
		To:      "player@example.com",
		Subject: "Your Baseball Certificate",
		Body:    "Congratulations",
		Attachments: []Attachment{
			{Filename: "certificate.pdf", ContentType: "application/pdf", Data: []byte("%PDF-1.3")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "league@example.com", got.From)
	assert.Equal(t, []string{"player@example.com"}, got.To)
	assert.Equal(t, "Congratulations", got.Text)
	require.Len(t, got.Attachments, 1)
	decoded, err := base64.StdEncoding.DecodeString(got.Attachments[0].Content)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(decoded))
	assert.Equal(t, 7, s.GetRateLimitInfo().Remaining)
}

func TestHTTPSenderAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"invalid to"}`))
	}))
	defer srv.Close()

	s := NewHTTPSender(mailConfig(srv.URL), zerolog.Nop())
	err := s.Send(context.Background(), Message{To: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestNewPicksTransport(t *testing.T) {
	cfg := &config.Config{Mail: config.MailConfig{Transport: config.MailLog}}
	s, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &LogSender{}, s)
	assert.NoError(t, s.Send(context.Background(), Message{To: "a@example.com"}))

	cfg.Mail = mailConfig("http://localhost")
	s, err = New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &HTTPSender{}, s)

	cfg.Mail.Transport = "pigeon"
	_, err = New(cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestSMTPBuildRejectsBadRecipient(t *testing.T) {
	s := NewSMTPSender(config.MailConfig{From: "league@example.com"}, zerolog.Nop())
	_, err := s.build(Message{To: "not an address"})
	assert.Error(t, err)
}
