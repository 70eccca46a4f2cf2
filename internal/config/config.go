// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// DefaultEndpointURL is the questionnaire repository submissions go to
// unless REMOTE_ENDPOINT_URL says otherwise.
const DefaultEndpointURL = "https://hapi.fhir.tw/fhir/Questionnaire"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Remote   RemoteConfig
	Upload   UploadConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Browser  BrowserConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 127.0.0.1, local use)
	Host string `env:"SERVER_HOST" default:"127.0.0.1"`

	// Port is the port to listen on (default: 5000)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"5000"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout must cover a slow remote submission (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// RemoteConfig holds settings for the questionnaire repository.
type RemoteConfig struct {
	// Enabled turns the "upload to server" step on (default: true)
	Enabled bool `env:"REMOTE_ENABLED" default:"true"`

	// EndpointURL receives the POSTed questionnaire
	EndpointURL string `env:"REMOTE_ENDPOINT_URL" envAlt:"FHIR_SERVER_URL" default:"https://hapi.fhir.tw/fhir/Questionnaire"`

	// Timeout bounds one submission round trip (default: 30s)
	Timeout time.Duration `env:"REMOTE_TIMEOUT" default:"30s"`
}

// UploadConfig holds CSV upload processing settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed file size in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`

	// MinConfidence is the lowest encoding guess (0-100) accepted (default: 0)
	MinConfidence int `env:"UPLOAD_MIN_CONFIDENCE" default:"0"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

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

// BrowserConfig controls the post-startup browser launch.
type BrowserConfig struct {
	// Open launches the default browser at the server root (default: true)
	Open bool `env:"BROWSER_OPEN" default:"true"`

	// Delay is how long after startup the browser is opened (default: 1s)
	Delay time.Duration `env:"BROWSER_OPEN_DELAY" default:"1s"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BaseURL returns the URL a local browser should open.
// Wildcard hosts are replaced by the loopback address.
func (c *ServerConfig) BaseURL() string {
	host := c.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port)) + "/"
}
