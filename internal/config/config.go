package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// Populated from environment variables (optionally loaded from .env).
type Config struct {
	App   AppConfig
	Redis RedisConfig
	JWT   JWTConfig
	HTTP  HTTPConfig
	Seed  SeedConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Enabled           bool // guard mutating routes with bearer tokens
	Secret            string
	AccessTokenExpiry int // minutes
}

type HTTPConfig struct {
	HTTPSRedirect bool
	HTTPSPort     string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

type SeedConfig struct {
	OnStartup bool
}

// Load reads the config from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 15*time.Minute),
		},
		JWT: JWTConfig{
			Enabled:           getEnvBool("AUTH_ENABLED", false),
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60),
		},
		HTTP: HTTPConfig{
			HTTPSRedirect: getEnvBool("HTTPS_REDIRECT", false),
			HTTPSPort:     getEnv("HTTPS_PORT", ""),
			ReadTimeout:   getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:  getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:   getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		},
		Seed: SeedConfig{
			OnStartup: getEnvBool("SEED_ON_STARTUP", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects settings that are unsafe outside development
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("APP_PORT must not be empty")
	}

	if c.App.Environment == "production" {
		if c.JWT.Enabled && c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
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

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(os.Getenv(key))
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
