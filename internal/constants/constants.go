package constants

import "time"

const (
	RequestTimeout  = 30 * time.Second
	DatabaseTimeout = 5 * time.Second
	HealthTimeout   = 2 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
)

const (
	// BulkSendConcurrency bounds parallel certificate sends.
	BulkSendConcurrency = 4
	SessionPurgeEvery   = 30 * time.Minute
	PasswordCost        = 10
)

const (
	MaxRequestBody = 1 << 20
)
