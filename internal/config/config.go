// Package config loads the application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// StorageBackendPostgres selects the Postgres repository implementation.
const StorageBackendPostgres = "postgres"

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Storage  StorageConfig
	LogLevel string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MinConns int32
	MaxConns int32
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// StorageConfig selects the repository implementation at startup.
type StorageConfig struct {
	Backend string
}

// Load loads configuration from environment variables, with a .env file as fallback.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file found, using environment variables from system")
	} else {
		log.Info("Loaded environment variables from .env file")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			Name:     getEnv("DB_NAME", "fittrack"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MinConns: getInt32Env("DB_MIN_CONNS", 5),
			MaxConns: getInt32Env("DB_MAX_CONNS", 30),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getDurationEnv("JWT_TTL", 15*time.Minute),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", StorageBackendPostgres),
		},
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt32Env(key string, fallback int32) int32 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		log.Warnf("Invalid value for %s: %s, using default", key, value)
		return fallback
	}
	return int32(parsed)
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Warnf("Invalid value for %s: %s, using default", key, value)
		return fallback
	}
	return parsed
}
