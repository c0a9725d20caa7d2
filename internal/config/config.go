package config

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile         = ".env"
	defaultHost            = "0.0.0.0"
	defaultPort            = "8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultRequestTimeout  = 30 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxConnections  = 0
	defaultSiteName        = "EvalPoint"
	defaultBaseURL         = "https://evalpoint.ai"
	defaultLogLevel        = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Analytics AnalyticsConfig
	Log       LogConfig
	Debug     bool
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	MaxConnections  int // 0 means unlimited
}

// Address returns the host:port pair the server binds to.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// SiteConfig holds values surfaced to every rendered page.
type SiteConfig struct {
	Name    string
	BaseURL string
}

// AnalyticsConfig holds client instrumentation identifiers.
type AnalyticsConfig struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the application configuration by combining defaults, .env overrides
// and environment variables. Command line flags are applied on top by the caller.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Cloud Run injects PORT; the prefixed key wins when both are set.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "EVALPOINT_WEB_PORT", port)

	cfg := Config{
		Server: ServerConfig{
			Host:            stringWithDefault(lookup, "EVALPOINT_WEB_HOST", defaultHost),
			Port:            port,
			ReadTimeout:     durationWithDefault(lookup, "EVALPOINT_WEB_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "EVALPOINT_WEB_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "EVALPOINT_WEB_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout:  durationWithDefault(lookup, "EVALPOINT_WEB_REQUEST_TIMEOUT", defaultRequestTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "EVALPOINT_WEB_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			MaxConnections:  intWithDefault(lookup, "EVALPOINT_WEB_MAX_CONNECTIONS", defaultMaxConnections),
		},
		Site: SiteConfig{
			Name:    stringWithDefault(lookup, "EVALPOINT_WEB_SITE_NAME", defaultSiteName),
			BaseURL: strings.TrimRight(stringWithDefault(lookup, "EVALPOINT_WEB_BASE_URL", defaultBaseURL), "/"),
		},
		Analytics: AnalyticsConfig{
			GA4MeasurementID: stringWithDefault(lookup, "EVALPOINT_WEB_GA_MEASUREMENT_ID", ""),
		},
		Log: LogConfig{
			Level: strings.ToLower(stringWithDefault(lookup, "LOG_LEVEL", defaultLogLevel)),
		},
		Debug: boolWithDefault(lookup, "EVALPOINT_WEB_DEBUG", false),
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every missing or invalid field in cfg. It is exported so
// callers can re-check after applying flag overrides.
func Validate(cfg Config) error {
	var missing []string

	if port, err := strconv.Atoi(cfg.Server.Port); err != nil || port < 1 || port > 65535 {
		missing = append(missing, "Server.Port")
	}
	if cfg.Server.ReadTimeout <= 0 {
		missing = append(missing, "Server.ReadTimeout")
	}
	if cfg.Server.WriteTimeout <= 0 {
		missing = append(missing, "Server.WriteTimeout")
	}
	if cfg.Server.IdleTimeout <= 0 {
		missing = append(missing, "Server.IdleTimeout")
	}
	if cfg.Server.RequestTimeout <= 0 {
		missing = append(missing, "Server.RequestTimeout")
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		missing = append(missing, "Server.ShutdownTimeout")
	}
	if cfg.Server.MaxConnections < 0 {
		missing = append(missing, "Server.MaxConnections")
	}
	if strings.TrimSpace(cfg.Site.Name) == "" {
		missing = append(missing, "Site.Name")
	}
	if u, err := url.Parse(cfg.Site.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		missing = append(missing, "Site.BaseURL")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func intWithDefault(lookup func(string) (string, bool), key string, fallback int) int {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return n
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}
