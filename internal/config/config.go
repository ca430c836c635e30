package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup. It is built once
// in the command layer and passed by reference into adapters; no package
// reads the environment on its own.
type Config struct {
	// ListenAddr is the HTTP listen address
	ListenAddr string

	// DatabaseURL is the postgres DSN
	DatabaseURL string

	// RedisAddr enables the travel-time cache when non-empty
	RedisAddr string

	// GoogleMapsAPIKey authenticates both the distance matrix and the
	// places provider
	GoogleMapsAPIKey string

	// AnthropicAPIKey authenticates the enrichment provider; enrichment
	// is skipped when empty
	AnthropicAPIKey string

	// BaseURL is the public frontend URL used to build share links
	BaseURL string
}

// Load reads configuration from .env and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LISTEN_ADDR", ":8000")
	v.SetDefault("DATABASE_URL", "host=localhost user=meridian dbname=meridian sslmode=disable")
	v.SetDefault("BASE_URL", "http://localhost:3000")

	return &Config{
		ListenAddr:       v.GetString("LISTEN_ADDR"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		GoogleMapsAPIKey: v.GetString("GOOGLE_MAPS_API_KEY"),
		AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
		BaseURL:          v.GetString("BASE_URL"),
	}, nil
}
