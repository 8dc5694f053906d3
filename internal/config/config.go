package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Speech output
	AudioCachePath string
	AudioPlayer    string

	// Remote score sync
	SyncBaseURL string
	SyncAPIKey  string

	// Progress-report email (Amazon SES)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./verblearn.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		AudioCachePath: getEnv("AUDIO_CACHE_PATH", "./audio-cache"),
		AudioPlayer:    getEnv("AUDIO_PLAYER", "mpg123"),
		SyncBaseURL:    getEnv("SYNC_BASE_URL", ""),
		SyncAPIKey:     getEnv("SYNC_API_KEY", ""),
		AWSRegion:      getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "VerbLearn"),
		Debug:          getEnv("DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
