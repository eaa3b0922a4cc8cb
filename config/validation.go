package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	messages := make([]string, len(v))
	for i, err := range v {
		messages[i] = err.Error()
	}
	return strings.Join(messages, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, message string) {
		errs = append(errs, ValidationError{Field: field, Message: message})
	}

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port < 1 || port > 65535 {
		add("SERVER_PORT", "must be a port number between 1 and 65535")
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DBHost == "" {
			add("DB_HOST", "is required for the postgres driver")
		}
		if cfg.DBName == "" {
			add("DB_NAME", "is required for the postgres driver")
		}
		if cfg.Environment == Production && cfg.DBPassword == "" {
			add("DB_PASSWORD", "db_password secret is required in production")
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for the sqlite driver")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	switch cfg.SnapshotBackend {
	case SnapshotMemory, SnapshotDatabase:
	case SnapshotRedis:
		if cfg.RedisURL == "" && cfg.RedisHost == "" {
			add("REDIS_HOST", "is required for the redis snapshot backend")
		}
	default:
		add("SNAPSHOT_BACKEND", fmt.Sprintf("unsupported backend %q", cfg.SnapshotBackend))
	}
	if cfg.SnapshotTTL < 0 {
		add("SNAPSHOT_TTL", "must not be negative")
	}

	if cfg.JWTSecret == "" {
		if cfg.Environment == CI {
			add("JWT_SECRET", "environment variable is required in CI environment")
		} else {
			add("JWT_SECRET", "jwt_secret secret is required")
		}
	}

	if cfg.RateLimitRequests < 0 {
		add("RATE_LIMIT_REQUESTS", "must not be negative")
	}
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow <= 0 {
		add("RATE_LIMIT_WINDOW", "must be positive when rate limiting is enabled")
	}
	if cfg.ShareLinkTTL <= 0 {
		add("SHARE_LINK_TTL", "must be positive")
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		add("LOG_FORMAT", fmt.Sprintf("unsupported format %q", cfg.LogFormat))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
