package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Snapshot backends a shopping list can be persisted to.
const (
	SnapshotMemory   = "memory"
	SnapshotRedis    = "redis"
	SnapshotDatabase = "database"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	// Server configuration
	ServerPort  string   `mapstructure:"server_port"`
	ServerHost  string   `mapstructure:"server_host"`
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Database configuration
	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_ssl_mode"`
	SQLitePath string `mapstructure:"sqlite_path"`

	// Redis configuration
	RedisHost     string `mapstructure:"redis_host"`
	RedisPort     string `mapstructure:"redis_port"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisURL      string `mapstructure:"redis_url"`

	// JWT configuration
	JWTSecret string `mapstructure:"jwt_secret"`

	// Shopping list persistence
	SnapshotBackend string        `mapstructure:"snapshot_backend"`
	SnapshotTTL     time.Duration `mapstructure:"snapshot_ttl"`
	AutoSave        bool          `mapstructure:"auto_save"`

	// Export sharing
	S3BucketName string        `mapstructure:"s3_bucket_name"`
	AWSRegion    string        `mapstructure:"aws_region"`
	S3Endpoint   string        `mapstructure:"s3_endpoint"`
	ShareLinkTTL time.Duration `mapstructure:"share_link_ttl"`

	// Rate limiting of shopping list writes; zero requests disables it
	RateLimitRequests int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// secretKeys are read from the Docker secrets directory outside CI.
var secretKeys = []string{
	"db_user",
	"db_password",
	"jwt_secret",
	"redis_password",
	"redis_url",
}

// LoadConfig builds a Config from defaults, Docker secrets and environment
// variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	v := viper.New()
	setDefaults(v)

	// GitHub Actions passes everything through the environment
	if env != CI {
		for _, name := range secretKeys {
			if value := readSecret(name); value != "" {
				v.SetDefault(name, value)
			}
		}
	}

	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = env

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("cors_origins", []string{"http://localhost:5173", "http://frontend:5173"})

	v.SetDefault("db_driver", DriverPostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "receiptify")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "receiptify.db")

	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_url", "")

	v.SetDefault("jwt_secret", "")

	v.SetDefault("snapshot_backend", SnapshotDatabase)
	v.SetDefault("snapshot_ttl", "0s")
	v.SetDefault("auto_save", true)

	v.SetDefault("s3_bucket_name", "receiptify-shopping-lists")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("share_link_ttl", "24h")

	v.SetDefault("rate_limit_requests", 120)
	v.SetDefault("rate_limit_window", "1m")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// DSN returns the lib/pq connection string
func (c *Config) DSN() string {
	sslMode := c.DBSSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode,
	)
}

// Addr returns the address the HTTP server listens on
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
