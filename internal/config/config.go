package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers understood by the server.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	Database  DatabaseConfig
	Server    ServerConfig
	Security  SecurityConfig
	Logging   LoggingConfig
	RateLimit RateLimitConfig

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool
	// SeedDemoData inserts the demo venues, artists and shows into an empty database.
	SeedDemoData bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver   string // postgres, memory
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds security-related settings
type SecurityConfig struct {
	// SessionSecret signs flash cookies.
	SessionSecret string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level     string // debug, info, warn, error
	Format    string // json, text
	ErrorFile string
}

// RateLimitConfig throttles form submissions per client when RedisAddr is set.
type RateLimitConfig struct {
	RedisAddr      string
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

// Enabled reports whether a Redis server was configured.
func (r RateLimitConfig) Enabled() bool {
	return r.RedisAddr != ""
}

// Load reads configuration from config/local.env (when present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.loadRateLimit(); err != nil {
		return nil, fmt.Errorf("load rate limit config: %w", err)
	}
	cfg.Security.SessionSecret = os.Getenv("SESSION_SECRET")
	cfg.loadLogging()

	cfg.MigrateOnStart = getEnvBool("MIGRATE_ON_START", false)
	cfg.SeedDemoData = getEnvBool("SEED_DEMO_DATA", false)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database section; used by tools that never serve HTTP.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{}
	if err := cfg.loadDatabase(); err != nil {
		return DatabaseConfig{}, err
	}
	if cfg.Database.URL == "" {
		return DatabaseConfig{}, fmt.Errorf("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return cfg.Database, nil
}

func (c *Config) loadDatabase() error {
	c.Database.Driver = strings.ToLower(getEnvOrDefault("STORE_DRIVER", DriverPostgres))

	// Try to load DATABASE_URL first
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}

	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "5000"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")

	if c.Server.ReadTimeout, err = getEnvDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return err
	}
	if c.Server.WriteTimeout, err = getEnvDuration("WRITE_TIMEOUT", 15*time.Second); err != nil {
		return err
	}
	if c.Server.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return err
	}
	return nil
}

func (c *Config) loadRateLimit() error {
	var err error
	c.RateLimit.RedisAddr = os.Getenv("REDIS_ADDR")
	if c.RateLimit.Capacity, err = getEnvInt("RATE_LIMIT_CAPACITY", 20); err != nil {
		return err
	}
	if c.RateLimit.RefillTokens, err = getEnvInt("RATE_LIMIT_REFILL_TOKENS", 1); err != nil {
		return err
	}
	if c.RateLimit.RefillInterval, err = getEnvDuration("RATE_LIMIT_REFILL_INTERVAL", 3*time.Second); err != nil {
		return err
	}
	if c.RateLimit.TTL, err = getEnvDuration("RATE_LIMIT_TTL", 10*time.Minute); err != nil {
		return err
	}
	return nil
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
	c.Logging.ErrorFile = os.Getenv("ERROR_LOG_FILE")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
		}
	case DriverMemory:
		if c.MigrateOnStart {
			errors = append(errors, "MIGRATE_ON_START requires STORE_DRIVER=postgres")
		}
	default:
		errors = append(errors, "STORE_DRIVER must be one of: postgres, memory")
	}

	if len(c.Security.SessionSecret) < 16 {
		errors = append(errors, "SESSION_SECRET must be at least 16 characters")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if c.RateLimit.Enabled() {
		if c.RateLimit.Capacity < 1 {
			errors = append(errors, "RATE_LIMIT_CAPACITY must be positive")
		}
		if c.RateLimit.RefillTokens < 1 || c.RateLimit.RefillInterval <= 0 {
			errors = append(errors, "RATE_LIMIT_REFILL_TOKENS and RATE_LIMIT_REFILL_INTERVAL must be positive")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(os.Getenv("ENV"))
	return env == "" || env == "development"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}
