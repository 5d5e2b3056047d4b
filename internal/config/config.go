package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// DatabaseURL enables the Postgres override source when set.
	DatabaseURL   string
	WorkerCount   int
	SourceLang    string
	TargetLang    string
	GameVersion   string
	OverridesFile string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		WorkerCount:   getEnvInt("WORKER_COUNT", 4),
		SourceLang:    getEnv("LOC_SOURCE_LANG", "eng"),
		TargetLang:    getEnv("LOC_TARGET_LANG", "zhs"),
		GameVersion:   getEnv("LOC_GAME_VERSION", "1800"),
		OverridesFile: getEnv("LOC_OVERRIDES_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("Invalid integer in environment, using default")
		return fallback
	}
	return n
}
