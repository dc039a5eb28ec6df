// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings that are not passed as CLI flags.
type Config struct {
	OpenAIAPIKey   string        `env:"BARISTABOT_OPENAI_API_KEY"`
	OpenAIFallback string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL  string        `env:"BARISTABOT_OPENAI_BASE_URL"`
	Model          string        `env:"BARISTABOT_MODEL" envDefault:"gpt-4o-mini"`
	MaxInputSize   int           `env:"BARISTABOT_MAX_INPUT_SIZE" envDefault:"4096"`
	MaxSteps       int           `env:"BARISTABOT_MAX_STEPS" envDefault:"16"`
	SessionTTL     time.Duration `env:"BARISTABOT_SESSION_TTL" envDefault:"24h"`
	RedisURL       string        `env:"BARISTABOT_REDIS_URL"`
	EncryptionKey  string        `env:"BARISTABOT_ENCRYPTION_KEY"`
	KitchenConfig  string        `env:"BARISTABOT_KITCHEN_CONFIG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the BaristaBot environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.MaxInputSize < 0 {
		return Config{}, fmt.Errorf("BARISTABOT_MAX_INPUT_SIZE must not be negative")
	}
	if cfg.MaxSteps < 0 {
		return Config{}, fmt.Errorf("BARISTABOT_MAX_STEPS must not be negative")
	}
	return cfg, nil
}

// APIKey returns the OpenAI key, preferring the BaristaBot-specific variable.
func (c Config) APIKey() string {
	if c.OpenAIAPIKey != "" {
		return c.OpenAIAPIKey
	}
	return c.OpenAIFallback
}
