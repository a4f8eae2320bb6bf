package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPPort             string        `yaml:"http_port"`
	DBDriver             string        `yaml:"db_driver"`
	DatabaseURL          string        `yaml:"database_url"`
	SQLitePath           string        `yaml:"sqlite_path"`
	RedisURL             string        `yaml:"redis_url"`
	JWTSecret            string        `yaml:"jwt_secret"`
	TokenTTL             time.Duration `yaml:"token_ttl"`
	LogLevel             string        `yaml:"log_level"`
	DBMaxOpenConns       int           `yaml:"db_max_open_conns"`
	DBMaxIdleConns       int           `yaml:"db_max_idle_conns"`
	DBConnMaxIdle        time.Duration `yaml:"db_conn_max_idle"`
	DBConnMaxLife        time.Duration `yaml:"db_conn_max_life"`
	RequestTimeout       time.Duration `yaml:"request_timeout"`
	ApplyRateLimitPerMin int           `yaml:"apply_rate_limit_per_min"`
}

func defaults() Config {
	return Config{
		HTTPPort:             "8080",
		DBDriver:             "postgres",
		SQLitePath:           "data/jobboard.db",
		TokenTTL:             7 * 24 * time.Hour,
		LogLevel:             "info",
		DBMaxOpenConns:       25,
		DBMaxIdleConns:       10,
		DBConnMaxIdle:        5 * time.Minute,
		DBConnMaxLife:        30 * time.Minute,
		RequestTimeout:       10 * time.Second,
		ApplyRateLimitPerMin: 5,
	}
}

// Load builds the runtime configuration. Sources, lowest precedence first:
// built-in defaults, the YAML file named by CONFIG_FILE, a .env file in the
// working directory, the process environment.
func Load() (*Config, error) {
	cfg := defaults()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return nil, err
		}
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.HTTPPort = envOr("HTTP_PORT", cfg.HTTPPort)
	cfg.DBDriver = strings.ToLower(envOr("DB_DRIVER", cfg.DBDriver))
	cfg.DatabaseURL = envOr("DATABASE_URL", cfg.DatabaseURL)
	cfg.SQLitePath = envOr("SQLITE_PATH", cfg.SQLitePath)
	cfg.RedisURL = envOr("REDIS_URL", cfg.RedisURL)
	cfg.JWTSecret = envOr("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = durationOr("TOKEN_TTL", cfg.TokenTTL)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.DBMaxOpenConns = intOr("DB_MAX_OPEN_CONNS", cfg.DBMaxOpenConns)
	cfg.DBMaxIdleConns = intOr("DB_MAX_IDLE_CONNS", cfg.DBMaxIdleConns)
	cfg.DBConnMaxIdle = durationOr("DB_CONN_MAX_IDLE", cfg.DBConnMaxIdle)
	cfg.DBConnMaxLife = durationOr("DB_CONN_MAX_LIFE", cfg.DBConnMaxLife)
	cfg.RequestTimeout = durationOr("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.ApplyRateLimitPerMin = intOr("APPLY_RATE_LIMIT_PER_MIN", cfg.ApplyRateLimitPerMin)

	if cfg.DBDriver == "pq" || cfg.DBDriver == "postgresql" {
		cfg.DBDriver = "postgres"
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	missing := make([]string, 0, 2)
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	switch c.DBDriver {
	case "postgres", "pgx":
		if c.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			missing = append(missing, "SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: want postgres, pgx or sqlite", c.DBDriver)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	if c.ApplyRateLimitPerMin < 0 {
		return fmt.Errorf("APPLY_RATE_LIMIT_PER_MIN must not be negative")
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func intOr(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
