// Package config provides application-wide configuration loaded from env vars and an
// optional config file. All fields have safe defaults so the binary runs locally without
// any env setup.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Config holds runtime configuration for nasamini.
type Config struct {
	// Transport
	Host string `validate:"required"`             // NASAMINI_HOST, default "0.0.0.0"
	Port int    `validate:"min=1,max=65535"`      // NASAMINI_PORT, default 8000
	// Upstream
	HTTPTimeout   time.Duration `validate:"gt=0"`         // NASAMINI_HTTP_TIMEOUT, default 15s
	NASABaseURL   string        `validate:"required,url"` // NASA_API_BASE_URL, default "https://api.nasa.gov"
	ImagesBaseURL string        `validate:"required,url"` // NASA_IMAGES_BASE_URL, default "https://images-api.nasa.gov"
	// Output
	ErrorStyle string `validate:"oneof=string structured"`                           // NASAMINI_ERROR_STYLE, default "string"
	LogLevel   string `validate:"oneof=trace debug info notice warning error critical"` // NASAMINI_LOG_LEVEL, default "info"
}

const (
	envKeyHost          = "NASAMINI_HOST"
	envKeyPort          = "NASAMINI_PORT"
	envKeyHTTPTimeout   = "NASAMINI_HTTP_TIMEOUT"
	envKeyNASABaseURL   = "NASA_API_BASE_URL"
	envKeyImagesBaseURL = "NASA_IMAGES_BASE_URL"
	envKeyErrorStyle    = "NASAMINI_ERROR_STYLE"
	envKeyLogLevel      = "NASAMINI_LOG_LEVEL"
	envKeyNASAKey       = "NASA_API_KEY"
)

// DefaultNASAKey is the public demo key accepted by api.nasa.gov with low rate limits.
const DefaultNASAKey = "DEMO_KEY"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:          "0.0.0.0",
		Port:          8000,
		HTTPTimeout:   15 * time.Second,
		NASABaseURL:   "https://api.nasa.gov",
		ImagesBaseURL: "https://images-api.nasa.gov",
		ErrorStyle:    "string",
		LogLevel:      "info",
	}
}

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// NASAKey returns the upstream API key. It is read on every call so a changed
// environment takes effect without a restart.
func NASAKey() string {
	return envOr(envKeyNASAKey, DefaultNASAKey)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c *Config) applyEnv() {
	c.Host = envOr(envKeyHost, c.Host)
	c.Port = envIntOr(envKeyPort, c.Port)
	c.HTTPTimeout = envDurationOr(envKeyHTTPTimeout, c.HTTPTimeout)
	c.NASABaseURL = strings.TrimRight(envOr(envKeyNASABaseURL, c.NASABaseURL), "/")
	c.ImagesBaseURL = strings.TrimRight(envOr(envKeyImagesBaseURL, c.ImagesBaseURL), "/")
	c.ErrorStyle = strings.ToLower(envOr(envKeyErrorStyle, c.ErrorStyle))
	c.LogLevel = strings.ToLower(envOr(envKeyLogLevel, c.LogLevel))
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr parses key as an int. A malformed value yields 0 so Validate rejects it
// instead of silently keeping the fallback.
func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return n
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0
	}
	return d
}
