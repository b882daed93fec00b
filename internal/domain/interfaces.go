package domain

import "time"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetDatabasePath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetAPIKey() string

	// Extraction pipeline settings.
	GetVisionAPIKey() string
	GetVisionEndpoint() string
	GetVisionJPEGQuality() int
	IsFallbackEnabled() bool
	GetFallbackEngine() string
	GetGarbledThreshold() float64
	GetExtractTimeout() time.Duration
	GetExtractWorkers() int
}
