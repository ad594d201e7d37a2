// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Report   ReportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request, body included (default: 60s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"60s"`

	// WriteTimeout must outlast a report request (default: 3m)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"3m"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown, analysis drain included (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 150s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"150s"`

	// CORSOrigins lists origins allowed to call the API; empty disables CORS headers
	CORSOrigins []string `env:"CORS_ORIGINS"`

	// TrustedProxies lists proxy CIDRs whose X-Real-IP / X-Forwarded-For headers are honored
	TrustedProxies []string `env:"SERVER_TRUSTED_PROXIES"`
}

// UploadConfig holds analysis upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 50MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"52428800"`

	// MaxConcurrent is the maximum number of parallel analyses (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an analysis slot (default: 30s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"30s"`

	// Timeout is the maximum duration for a single analysis (default: 2m)
	Timeout time.Duration `env:"UPLOAD_TIMEOUT" default:"2m"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the analyze endpoint (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`

	// ReportLimit is requests per minute for the report endpoint (default: 5)
	ReportLimit int `env:"RATE_LIMIT_REPORT" default:"5"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// RequireAPIKey gates the report endpoint behind an API key (default: true)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"true"`

	// APIKeys is a comma-separated list of accepted keys
	APIKeys []string `env:"API_KEYS" envAlt:"ACCESS_TOKEN"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// ReportConfig holds settings for the report model.
type ReportConfig struct {
	// Endpoint is the OpenAI-compatible base URL (default: https://api.openai.com/v1)
	Endpoint string `env:"REPORT_ENDPOINT" default:"https://api.openai.com/v1"`

	// APIKey authenticates against the endpoint; empty disables reports
	APIKey string `env:"REPORT_API_KEY" envAlt:"API_KEY"`

	// Model is the chat model name (default: gpt-4o-mini)
	Model string `env:"REPORT_MODEL" default:"gpt-4o-mini"`

	// Timeout bounds one report request (default: 2m)
	Timeout time.Duration `env:"REPORT_TIMEOUT" default:"2m"`

	// CriticalLimit caps the critical items sent to the model (default: 25)
	CriticalLimit int `env:"REPORT_CRITICAL_LIMIT" default:"25"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Enabled reports whether a model key is configured.
func (c *ReportConfig) Enabled() bool {
	return c.APIKey != ""
}
