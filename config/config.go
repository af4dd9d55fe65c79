// Package config provides centralized configuration management for the
// service with validation, type safety, and clear documentation for
// SRE/DevOps teams.
//
// Configuration Sources (12-factor app principles):
//  1. Default values (hardcoded)
//  2. .env file (local development via godotenv)
//  3. Environment variables (Kubernetes runtime)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Photo store names.
const (
	PhotoStoreLocal = "local"
	PhotoStoreS3    = "s3"
)

// DefaultMaxPhotoSize is the inclusive profile-photo payload limit (5 MiB).
const DefaultMaxPhotoSize = 5 * 1024 * 1024

// Config holds all configuration for the service.
type Config struct {
	Service         ServiceConfig   // Service-specific settings (port, name, version)
	Tracing         TracingConfig   // OpenTelemetry configuration
	Profiling       ProfilingConfig // Pyroscope continuous profiling
	Logging         LoggingConfig   // Structured logging (Zap)
	Metrics         MetricsConfig   // Prometheus metrics
	Database        DatabaseConfig  // PostgreSQL database configuration
	Storage         StorageConfig   // Record storage backend selection
	Photo           PhotoConfig     // Profile-photo asset store
	ShutdownTimeout int             // Graceful shutdown timeout in seconds - from SHUTDOWN_TIMEOUT env (default: 10)
	// ReadinessDrainDelay: delay after failing readiness before shutting down the HTTP server.
	// This gives Kubernetes/Service routing time to stop sending new traffic.
	// From READINESS_DRAIN_DELAY env (default: 5s, max: 30s).
	ReadinessDrainDelay int
}

// ServiceConfig defines basic service configuration
type ServiceConfig struct {
	Name    string // Service name - from SERVICE_NAME env
	Port    string // HTTP server port (default: "8080") - from PORT env
	Version string // Service version (optional) - from VERSION env
	Env     string // Environment (dev/staging/production) - from ENV env
}

// TracingConfig defines OpenTelemetry tracing configuration
type TracingConfig struct {
	Enabled            bool    // Enable tracing (default: true) - from TRACING_ENABLED env
	Endpoint           string  // OTel Collector endpoint - from OTEL_COLLECTOR_ENDPOINT env
	SampleRate         float64 // Trace sampling rate (0.0-1.0) - from OTEL_SAMPLE_RATE env
	ServiceName        string  // Service name for traces (defaults to ServiceConfig.Name)
	MaxExportBatchSize int     // Max spans per batch (default: 512)
}

// ProfilingConfig defines Pyroscope continuous profiling configuration
type ProfilingConfig struct {
	Enabled     bool   // Enable profiling (default: false) - from PROFILING_ENABLED env
	Endpoint    string // Pyroscope endpoint - from PYROSCOPE_ENDPOINT env
	ServiceName string // Service name for profiling (defaults to ServiceConfig.Name)
}

// LoggingConfig defines structured logging configuration
type LoggingConfig struct {
	Level  string // Log level: debug, info, warn, error (default: "info") - from LOG_LEVEL env
	Format string // Log format: json, console (default: "json") - from LOG_FORMAT env
}

// MetricsConfig defines Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool   // Enable metrics (default: true) - from METRICS_ENABLED env
	Path    string // Metrics endpoint path (default: "/metrics") - from METRICS_PATH env
}

// DatabaseConfig defines PostgreSQL database configuration, used when
// the postgres storage backend is selected.
type DatabaseConfig struct {
	Host           string // Database host - from DB_HOST env
	Port           string // Database port - from DB_PORT env (default: "5432")
	Name           string // Database name - from DB_NAME env
	User           string // Database user - from DB_USER env
	Password       string // Database password - from DB_PASSWORD env
	SSLMode        string // SSL mode - from DB_SSLMODE env (default: "disable")
	MaxConnections int    // Max connections - from DB_POOL_MAX_CONNECTIONS env (default: 25)
}

// StorageConfig selects the record storage backend.
type StorageConfig struct {
	Backend    string // STORAGE_BACKEND: memory | postgres | sqlite (default: memory)
	SQLitePath string // SQLITE_PATH: database file for the sqlite backend (default: "member.db")
}

// PhotoConfig configures the profile-photo asset store.
type PhotoConfig struct {
	Store   string // PHOTO_STORE: local | s3 (default: local)
	Dir     string // PHOTO_DIR: directory for the local store (default: "profile_photos")
	Bucket  string // PHOTO_BUCKET: bucket for the s3 store
	MaxSize int64  // MAX_PHOTO_SIZE: inclusive payload limit in bytes (default: 5 MiB)
}

// BuildDSN constructs PostgreSQL connection string from config
func (c *DatabaseConfig) BuildDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConnections)
}

// Load reads configuration from environment variables with defaults.
// It automatically loads a .env file if present (for local development).
//
// Priority: .env file < environment variables.
func Load() *Config {
	// godotenv.Load() fails silently if .env doesn't exist - perfect for production
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "member-service"),
			Port:    getEnv("PORT", "8080"),
			Version: getEnv("VERSION", "dev"),
			Env:     getEnv("ENV", "development"),
		},
		Tracing: TracingConfig{
			Enabled:            getEnvBool("TRACING_ENABLED", false),
			Endpoint:           getEnv("OTEL_COLLECTOR_ENDPOINT", ""),
			SampleRate:         getEnvFloat("OTEL_SAMPLE_RATE", 0.1),
			ServiceName:        getEnv("SERVICE_NAME", "member-service"),
			MaxExportBatchSize: getEnvInt("OTEL_BATCH_SIZE", 512),
		},
		Profiling: ProfilingConfig{
			Enabled:     getEnvBool("PROFILING_ENABLED", false),
			Endpoint:    getEnv("PYROSCOPE_ENDPOINT", ""),
			ServiceName: getEnv("SERVICE_NAME", "member-service"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", ""),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", ""),
			User:           getEnv("DB_USER", ""),
			Password:       getEnv("DB_PASSWORD", ""),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConnections: getEnvInt("DB_POOL_MAX_CONNECTIONS", 25),
		},
		Storage: StorageConfig{
			Backend:    strings.ToLower(getEnv("STORAGE_BACKEND", BackendMemory)),
			SQLitePath: getEnv("SQLITE_PATH", "member.db"),
		},
		Photo: PhotoConfig{
			Store:   strings.ToLower(getEnv("PHOTO_STORE", PhotoStoreLocal)),
			Dir:     getEnv("PHOTO_DIR", "profile_photos"),
			Bucket:  getEnv("PHOTO_BUCKET", ""),
			MaxSize: getEnvInt64("MAX_PHOTO_SIZE", DefaultMaxPhotoSize),
		},
		ShutdownTimeout:     getEnvDurationSeconds("SHUTDOWN_TIMEOUT", 10, 60),
		ReadinessDrainDelay: getEnvDurationSeconds("READINESS_DRAIN_DELAY", 5, 30),
	}
}

// Validate performs comprehensive validation of all configuration fields.
// Returns detailed error messages for SRE/DevOps troubleshooting.
func (c *Config) Validate() error {
	var errs []string

	if c.Service.Name == "" {
		errs = append(errs, "SERVICE_NAME is required")
	}
	if c.Service.Port == "" {
		errs = append(errs, "PORT is required (e.g., '8080')")
	}
	if _, err := strconv.Atoi(c.Service.Port); err != nil {
		errs = append(errs, fmt.Sprintf("PORT must be a valid number, got: %s", c.Service.Port))
	}
	validEnvs := []string{"development", "dev", "staging", "stage", "production", "prod"}
	if !contains(validEnvs, c.Service.Env) {
		errs = append(errs, fmt.Sprintf("ENV must be one of %v, got: %s", validEnvs, c.Service.Env))
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			errs = append(errs, "OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			errs = append(errs, fmt.Sprintf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got: %.2f", c.Tracing.SampleRate))
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		errs = append(errs, "PYROSCOPE_ENDPOINT is required when profiling is enabled")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of %v, got: %s", validLogLevels, c.Logging.Level))
	}
	validLogFormats := []string{"json", "console"}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of %v, got: %s", validLogFormats, c.Logging.Format))
	}

	validBackends := []string{BackendMemory, BackendPostgres, BackendSQLite}
	if !contains(validBackends, c.Storage.Backend) {
		errs = append(errs, fmt.Sprintf("STORAGE_BACKEND must be one of %v, got: %s", validBackends, c.Storage.Backend))
	}
	if c.Storage.Backend == BackendPostgres {
		if c.Database.Host == "" {
			errs = append(errs, "DB_HOST is required for the postgres backend")
		}
		if c.Database.Name == "" {
			errs = append(errs, "DB_NAME is required for the postgres backend")
		}
		if c.Database.User == "" {
			errs = append(errs, "DB_USER is required for the postgres backend")
		}
		if c.Database.Password == "" {
			errs = append(errs, "DB_PASSWORD is required for the postgres backend")
		}
		if c.Database.Port != "" {
			if _, err := strconv.Atoi(c.Database.Port); err != nil {
				errs = append(errs, fmt.Sprintf("DB_PORT must be a valid number, got: %s", c.Database.Port))
			}
		}
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		errs = append(errs, "SQLITE_PATH is required for the sqlite backend")
	}

	validPhotoStores := []string{PhotoStoreLocal, PhotoStoreS3}
	if !contains(validPhotoStores, c.Photo.Store) {
		errs = append(errs, fmt.Sprintf("PHOTO_STORE must be one of %v, got: %s", validPhotoStores, c.Photo.Store))
	}
	if c.Photo.Store == PhotoStoreLocal && c.Photo.Dir == "" {
		errs = append(errs, "PHOTO_DIR is required for the local photo store")
	}
	if c.Photo.Store == PhotoStoreS3 && c.Photo.Bucket == "" {
		errs = append(errs, "PHOTO_BUCKET is required for the s3 photo store")
	}
	if c.Photo.MaxSize <= 0 {
		errs = append(errs, fmt.Sprintf("MAX_PHOTO_SIZE must be positive, got: %d", c.Photo.MaxSize))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "production" || env == "prod"
}

// GetShutdownTimeoutDuration returns shutdown timeout as time.Duration.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// GetReadinessDrainDelayDuration returns readiness drain delay as time.Duration.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.ReadinessDrainDelay) * time.Second
}

// Helper functions for environment variable parsing

// getEnv reads an environment variable with a default fallback
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable with a default fallback.
// Accepts: "true", "1", "yes" for true | "false", "0", "no" for false
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt reads an integer environment variable with a default fallback.
// Returns default if parsing fails.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvInt64 reads an int64 environment variable with a default fallback.
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat reads a float64 environment variable with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvDurationSeconds reads a duration env var and returns seconds as int.
// Accepts Go duration format (e.g., "10s", "30s", "1m").
// Returns default on invalid or out-of-range values (silent fallback for
// startup safety).
func getEnvDurationSeconds(key string, defaultValueSeconds, maxSeconds int) int {
	timeoutStr := os.Getenv(key)
	if timeoutStr == "" {
		return defaultValueSeconds
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return defaultValueSeconds
	}

	seconds := int(timeout.Seconds())
	if seconds <= 0 || seconds > maxSeconds {
		return defaultValueSeconds
	}
	return seconds
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
