package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries everything the bot and the command kit need, sourced from
// the environment (a .env file is honored when present).
type Config struct {
	Token   string `env:"DISCORD_TOKEN"`
	GuildID string `env:"DISCORD_GUILD_ID"`

	// CommandTimeout bounds each remote registry call.
	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT" envDefault:"10s"`

	// CreateRate paces command create calls, per second.
	CreateRate float64 `env:"COMMAND_CREATE_RATE" envDefault:"20"`

	// ComponentTTL is how long a component binding stays dispatchable.
	ComponentTTL time.Duration `env:"COMPONENT_TTL" envDefault:"15m"`

	// SweepSchedule is the cron spec for the component table sweep.
	SweepSchedule string `env:"COMPONENT_SWEEP_SCHEDULE" envDefault:"@every 1m"`

	// HashCacheDir holds the per-scope command hash files.
	HashCacheDir string `env:"COMMAND_CACHE_DIR" envDefault:"data/commands"`

	// MetricsAddr enables the prometheus listener when non-empty.
	MetricsAddr string `env:"METRICS_ADDR"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
