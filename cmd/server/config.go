package main

import (
	"os"
	"strconv"

	"tourney-director/backend/internal/db"
	"tourney-director/backend/internal/display"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the application
type Config struct {
	// Database configuration
	DBConfig db.Config

	// Display channel configuration
	DisplayConfig  display.Config
	DisplayEnabled bool

	// Server configuration
	ServerPort  string
	Environment string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() Config {
	// Load .env file if it exists
	godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		DBConfig: db.Config{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "tourney-director.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "tourney_director"),
		},
		DisplayConfig: display.Config{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			Key:      getEnv("DISPLAY_KEY", display.DefaultSnapshotKey),
		},
		DisplayEnabled: getEnv("DISPLAY_ENABLED", "true") == "true",
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    getEnv("ENV", "development"),
	}
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
