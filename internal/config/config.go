package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	Port     string
	LogLevel string

	DBConnectionString string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration

	JWTSecret              string
	SessionCleanupSchedule string
	CookieSecure           bool
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBConnectionString: getEnv("DB_CONNECTION_STRING", ""),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 50),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetime:  getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),

		JWTSecret:              getEnv("JWT_SECRET", ""),
		SessionCleanupSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "@every 10m"),
		CookieSecure:           getEnvBool("COOKIE_SECURE", false),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if c.DBConnectionString == "" {
		problems = append(problems, "no DB_CONNECTION_STRING provided")
	}
	if c.DBMaxOpenConns < 1 {
		problems = append(problems, "DB_MAX_OPEN_CONNS must be positive")
	}
	if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
		problems = append(problems, "DB_MAX_IDLE_CONNS must be between 0 and DB_MAX_OPEN_CONNS")
	}

	if c.JWTSecret == "" {
		problems = append(problems, "no JWT_SECRET provided")
	}

	if _, err := cron.ParseStandard(c.SessionCleanupSchedule); err != nil {
		problems = append(problems, fmt.Sprintf("invalid SESSION_CLEANUP_SCHEDULE '%s': %v", c.SessionCleanupSchedule, err))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed: " + strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
