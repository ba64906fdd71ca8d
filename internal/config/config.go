package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port          string
	ModelPath     string
	DatasetSource string // "csv" or "sqlite"
	DatasetPath   string // CSV file path
	DBPath        string // SQLite database path
	DatasetTable  string // SQLite observation table
	JWTSecret     string
	SessionTTL    time.Duration
}

// Load reads configuration from the environment, with an optional .env
// file layered underneath
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] Loaded .env file")
	}

	cfg := &Config{
		Port:          getEnv("PORT", ":8080"),
		ModelPath:     getEnv("MODEL_PATH", "./models/sparse_lgcp.json"),
		DatasetSource: getEnv("DATASET_SOURCE", "csv"),
		DatasetPath:   getEnv("DATASET_PATH", "./data/sharks_spatial_filtered.csv"),
		DBPath:        getEnv("DB_PATH", "./data/observations.db"),
		DatasetTable:  getEnv("DATASET_TABLE", "observations"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		SessionTTL:    getDuration("SESSION_TTL", 30*time.Minute),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[Config] Invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return d
}
