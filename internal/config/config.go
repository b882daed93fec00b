package config

import (
	"os"
	"strconv"
	"time"

	"pdf-text-extractor/internal/domain"
)

// Default Gemini-style multimodal endpoint used when VISION_ENDPOINT is unset.
const defaultVisionEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	UploadPath  string
	DBPath      string
	MaxFileSize int64
	LogLevel    string
	APIKey      string

	VisionAPIKey      string
	VisionEndpoint    string
	VisionJPEGQuality int
	FallbackEnabled   bool
	FallbackEngine    string
	GarbledThreshold  float64
	ExtractTimeout    time.Duration
	ExtractWorkers    int
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadPath:  getEnvOrDefault("UPLOAD_PATH", "./uploads"),
		DBPath:      getEnvOrDefault("DB_PATH", "./pdf-text-extractor.db"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		APIKey:      getEnvOrDefault("API_KEY", ""),

		VisionAPIKey:      getEnvOrDefault("VISION_API_KEY", ""),
		VisionEndpoint:    getEnvOrDefault("VISION_ENDPOINT", defaultVisionEndpoint),
		VisionJPEGQuality: getEnvIntOrDefault("VISION_JPEG_QUALITY", 80),
		FallbackEnabled:   getEnvBoolOrDefault("FALLBACK_ENABLED", true),
		FallbackEngine:    getEnvOrDefault("FALLBACK_ENGINE", "ocr"),
		GarbledThreshold:  getEnvFloatOrDefault("GARBLED_THRESHOLD", 0.30),
		ExtractTimeout:    time.Duration(getEnvIntOrDefault("EXTRACT_TIMEOUT_SECONDS", 30)) * time.Second,
		ExtractWorkers:    getEnvIntOrDefault("EXTRACT_WORKERS", 4),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadPath returns the upload directory path
func (c *AppConfig) GetUploadPath() string {
	return c.UploadPath
}

// GetDatabasePath returns the SQLite database file path
func (c *AppConfig) GetDatabasePath() string {
	return c.DBPath
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetAPIKey returns the server API key; empty disables authentication
func (c *AppConfig) GetAPIKey() string {
	return c.APIKey
}

// GetVisionAPIKey returns the multimodal model API key
func (c *AppConfig) GetVisionAPIKey() string {
	return c.VisionAPIKey
}

// GetVisionEndpoint returns the multimodal model endpoint URL
func (c *AppConfig) GetVisionEndpoint() string {
	return c.VisionEndpoint
}

// GetVisionJPEGQuality returns the JPEG quality used when serializing page images
func (c *AppConfig) GetVisionJPEGQuality() int {
	return c.VisionJPEGQuality
}

// IsFallbackEnabled reports whether OCR/vision fallback is enabled
func (c *AppConfig) IsFallbackEnabled() bool {
	return c.FallbackEnabled
}

// GetFallbackEngine returns the active fallback engine ("ocr" or "vision")
func (c *AppConfig) GetFallbackEngine() string {
	return c.FallbackEngine
}

// GetGarbledThreshold returns the special-character ratio above which native
// text is considered garbled
func (c *AppConfig) GetGarbledThreshold() float64 {
	return c.GarbledThreshold
}

// GetExtractTimeout returns the per-page timeout for OCR/vision calls
func (c *AppConfig) GetExtractTimeout() time.Duration {
	return c.ExtractTimeout
}

// GetExtractWorkers returns the parallelism for whole-document extraction
func (c *AppConfig) GetExtractWorkers() int {
	return c.ExtractWorkers
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
