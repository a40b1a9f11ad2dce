package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// State backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds the whatsnew configuration
type Config struct {
	Log LogConfig

	// State configures where the last seen versions are kept
	State StateConfig

	Preview PreviewConfig

	// Suppress never shows the page, as in a restricted environment
	Suppress bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// StateConfig holds the state store configuration
type StateConfig struct {
	Backend string

	// Path is the JSON file (file backend) or the database DSN (sqlite backend)
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// PreviewConfig holds the preview server configuration
type PreviewConfig struct {
	Addr string
}

// Load loads configuration from a .env file, if any, and the environment
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load(".env")

	cfg := &Config{
		Log: LogConfig{
			Level:  getEnv("WHATSNEW_LOG_LEVEL", "info"),
			Format: getEnv("WHATSNEW_LOG_FORMAT", "text"),
		},
		State: StateConfig{
			Backend:       strings.ToLower(getEnv("WHATSNEW_STATE_BACKEND", BackendFile)),
			Path:          getEnv("WHATSNEW_STATE_PATH", ""),
			RedisAddr:     getEnv("WHATSNEW_REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("WHATSNEW_REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("WHATSNEW_REDIS_DB", 0),
		},
		Preview: PreviewConfig{
			Addr: getEnv("WHATSNEW_PREVIEW_ADDR", "127.0.0.1:3000"),
		},
		Suppress: getEnvAsBool("WHATSNEW_SUPPRESS", false),
	}

	if cfg.State.Path == "" {
		cfg.State.Path = defaultStatePath(cfg.State.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %q (must be json or text)", c.Log.Format)
	}

	switch c.State.Backend {
	case BackendFile, BackendSQLite:
		if c.State.Path == "" {
			return fmt.Errorf("state path is required for the %s backend", c.State.Backend)
		}
	case BackendRedis:
		if c.State.RedisAddr == "" {
			return fmt.Errorf("redis address is required for the redis backend")
		}
		if c.State.RedisDB < 0 {
			return fmt.Errorf("invalid redis database: %d", c.State.RedisDB)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown state backend: %q (must be file, sqlite, redis or memory)", c.State.Backend)
	}

	if c.Preview.Addr == "" {
		return fmt.Errorf("preview address is required")
	}

	return nil
}

func defaultStatePath(backend string) string {
	switch backend {
	case BackendFile:
		return ".whatsnew/state.json"
	case BackendSQLite:
		return "file:.whatsnew/state.db"
	default:
		return ""
	}
}

// Helper functions to get environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
