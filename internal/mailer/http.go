package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/HadiRehman/NLSA-USA/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// HTTPSender posts messages to a JSON email API in the shape Resend accepts.
type HTTPSender struct {
	url         string
	apiKey      string
	from        string
	client      *fasthttp.Client
	logger      zerolog.Logger
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo
}

type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

type sendRequest struct {
	From        string           `json:"from"`
	To          []string         `json:"to"`
	Subject     string           `json:"subject"`
	Text        string           `json:"text"`
	Attachments []sendAttachment `json:"attachments,omitempty"`
}

type sendAttachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

type SendResponse struct {
	ID string `json:"id"`
}

func NewHTTPSender(cfg config.MailConfig, logger zerolog.Logger) *HTTPSender {
	return &HTTPSender{
		url:    cfg.APIURL,
		apiKey: cfg.APIKey,
		from:   cfg.From,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         cfg.Timeout,
			WriteTimeout:        cfg.Timeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger,
		rateLimit: RateLimitInfo{
			Limit:     10,
			Remaining: 10,
			Reset:     1,
			UpdatedAt: time.Now(),
		},
	}
}

func (s *HTTPSender) GetRateLimitInfo() RateLimitInfo {
	s.rateLimitMu.RLock()
	defer s.rateLimitMu.RUnlock()
	return s.rateLimit
}

func (s *HTTPSender) updateRateLimit(resp *fasthttp.Response) {
	s.rateLimitMu.Lock()
	defer s.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			s.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			s.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			s.rateLimit.Reset = val
		}
	}
	s.rateLimit.UpdatedAt = time.Now()
}

func (s *HTTPSender) Send(ctx context.Context, msg Message) error {
	body := sendRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
	}
	for _, a := range msg.Attachments {
		body.Attachments = append(body.Attachments, sendAttachment{
			Filename:    a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			ContentType: a.ContentType,
		})
	}

	resp, err := doRequest[SendResponse](ctx, s, body)
	if err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	rl := s.GetRateLimitInfo()
	s.logger.Debug().
		Str("to", msg.To).
		Str("message_id", resp.ID).
		Int("ratelimit_remaining", rl.Remaining).
		Msg("mail accepted")
	return nil
}

func doRequest[T any](ctx context.Context, s *HTTPSender, payload any) (*T, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(s.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.SetBody(encoded)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := s.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := s.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	s.updateRateLimit(resp)

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, fmt.Errorf("API error: %d: %s", code, truncate(resp.Body(), 200))
	}

	var result T
	if len(resp.Body()) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
