package mailer

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender records messages instead of delivering them.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	names := make([]string, len(msg.Attachments))
	for i, a := range msg.Attachments {
		names[i] = a.Filename
	}
	s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Strs("attachments", names).
		Msg("mail delivery skipped")
	return nil
}
