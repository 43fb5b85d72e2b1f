package server

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// AppConfig holds everything the server needs to start.
type AppConfig struct {
	Addr         string        `env:"TEMPE_ADDR" envDefault:":8080"`
	ContentPath  string        `env:"TEMPE_CONTENT"`
	SessionIdle  time.Duration `env:"TEMPE_SESSION_IDLE" envDefault:"30m"`
	CleanupEvery time.Duration `env:"TEMPE_CLEANUP_EVERY" envDefault:"1m"`
	GinMode      string        `env:"TEMPE_GIN_MODE" envDefault:"release"`
}

// ConfigOverrides represents optional command-line overrides. Nil fields
// keep the environment value.
type ConfigOverrides struct {
	Addr         *string
	ContentPath  *string
	SessionIdle  *time.Duration
	CleanupEvery *time.Duration
}

func (o ConfigOverrides) apply(base AppConfig) AppConfig {
	if o.Addr != nil {
		base.Addr = *o.Addr
	}
	if o.ContentPath != nil {
		base.ContentPath = *o.ContentPath
	}
	if o.SessionIdle != nil {
		base.SessionIdle = *o.SessionIdle
	}
	if o.CleanupEvery != nil {
		base.CleanupEvery = *o.CleanupEvery
	}
	return sanitizeConfig(base)
}

// DefaultAppConfig returns the configuration used when no environment is set.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Addr:         ":8080",
		SessionIdle:  30 * time.Minute,
		CleanupEvery: time.Minute,
		GinMode:      "release",
	}
}

// ParseEnv fills cfg from environment variables.
func ParseEnv(cfg *AppConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadConfig reads an optional .env file, then the environment, then the
// overrides.
func LoadConfig(dotenvPath string, overrides ConfigOverrides) (AppConfig, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !os.IsNotExist(err) {
			return AppConfig{}, fmt.Errorf("load %s: %w", dotenvPath, err)
		}
	}
	var cfg AppConfig
	if err := ParseEnv(&cfg); err != nil {
		return AppConfig{}, err
	}
	return overrides.apply(cfg), nil
}

func sanitizeConfig(cfg AppConfig) AppConfig {
	def := DefaultAppConfig()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.SessionIdle <= 0 {
		log.Printf("session idle %v is not positive, using %v", cfg.SessionIdle, def.SessionIdle)
		cfg.SessionIdle = def.SessionIdle
	}
	if cfg.CleanupEvery <= 0 {
		log.Printf("cleanup interval %v is not positive, using %v", cfg.CleanupEvery, def.CleanupEvery)
		cfg.CleanupEvery = def.CleanupEvery
	}
	if cfg.GinMode == "" {
		cfg.GinMode = def.GinMode
	}
	return cfg
}
