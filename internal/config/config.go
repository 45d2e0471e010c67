// Package config provides configuration management for the API server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultServerPort      = 3000
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMetricsEnabled  = true
	DefaultDataDir         = "data"
	DefaultTokenTTL        = 24 * time.Hour
	DefaultBcryptCost      = 10
)

// Environment variable names.
const (
	EnvServerPort      = "APP_SERVER_PORT"
	EnvLogLevel        = "APP_LOG_LEVEL"
	EnvShutdownTimeout = "APP_SHUTDOWN_TIMEOUT"
	EnvMetricsEnabled  = "APP_METRICS_ENABLED"
	EnvDataDir         = "APP_DATA_DIR"
	EnvWebDir          = "APP_WEB_DIR"
	EnvJWTSecret       = "APP_JWT_SECRET" //nolint:gosec // env var name, not a credential
	EnvTokenTTL        = "APP_JWT_TTL"
	EnvBcryptCost      = "APP_BCRYPT_COST"
	EnvAdminUsername   = "APP_ADMIN_USERNAME"
	EnvAdminPassword   = "APP_ADMIN_PASSWORD" //nolint:gosec // env var name, not a credential
)

// Config holds the application configuration.
type Config struct {
	// Server settings.
	ServerPort      int
	LogLevel        string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// Storage settings.
	DataDir string

	// Static frontend directory ("" disables static serving).
	WebDir string

	// Session settings.
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	// Optional admin account seeded at startup when absent.
	AdminUsername string
	AdminPassword string
}

// Validation errors.
var (
	ErrInvalidServerPort      = errors.New("server port must be between 1 and 65535")
	ErrInvalidLogLevel        = errors.New("log level must be one of: debug, info, warn, error")
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
	ErrMissingJWTSecret       = errors.New("JWT secret must be set")
	ErrInvalidTokenTTL        = errors.New("token TTL must be positive")
	ErrIncompleteAdminSeed    = errors.New(
		"admin username and password must be set together or not at all",
	)
)

// Load reads configuration from environment variables with defaults.
// Environment variables have priority over default values.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      DefaultServerPort,
		LogLevel:        DefaultLogLevel,
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  DefaultMetricsEnabled,
		DataDir:         DefaultDataDir,
		TokenTTL:        DefaultTokenTTL,
		BcryptCost:      DefaultBcryptCost,
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("loading config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration values from environment variables.
func (c *Config) loadFromEnv() error {
	if err := c.loadServerEnv(); err != nil {
		return err
	}

	return c.loadAuthEnv()
}

// loadServerEnv loads server and storage environment variables.
func (c *Config) loadServerEnv() error {
	if val := os.Getenv(EnvServerPort); val != "" {
		port, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvServerPort, err)
		}
		c.ServerPort = port
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		c.LogLevel = val
	}

	if val := os.Getenv(EnvShutdownTimeout); val != "" {
		timeout, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvShutdownTimeout, err)
		}
		c.ShutdownTimeout = timeout
	}

	if val := os.Getenv(EnvMetricsEnabled); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvMetricsEnabled, err)
		}
		c.MetricsEnabled = enabled
	}

	if val := os.Getenv(EnvDataDir); val != "" {
		c.DataDir = val
	}

	if val := os.Getenv(EnvWebDir); val != "" {
		c.WebDir = val
	}

	return nil
}

// loadAuthEnv loads session and seeding environment variables.
func (c *Config) loadAuthEnv() error {
	c.JWTSecret = os.Getenv(EnvJWTSecret)

	if val := os.Getenv(EnvTokenTTL); val != "" {
		ttl, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTokenTTL, err)
		}
		c.TokenTTL = ttl
	}

	if val := os.Getenv(EnvBcryptCost); val != "" {
		cost, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvBcryptCost, err)
		}
		c.BcryptCost = cost
	}

	c.AdminUsername = os.Getenv(EnvAdminUsername)
	c.AdminPassword = os.Getenv(EnvAdminPassword)

	return nil
}

// Validate checks if the configuration values are valid.
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return ErrInvalidServerPort
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return ErrInvalidLogLevel
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}

	if c.TokenTTL <= 0 {
		return ErrInvalidTokenTTL
	}

	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return ErrIncompleteAdminSeed
	}

	return nil
}

// Address returns the server address in host:port format.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
