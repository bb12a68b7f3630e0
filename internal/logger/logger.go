package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const serviceName = "league-admin"

func New() zerolog.Logger {
	return NewWithWriter(os.Stdout)
}

func NewWithWriter(w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Str("service", serviceName).
		Logger()
}
