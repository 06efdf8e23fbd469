package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	minTokenLength = 50 // Discord tokens are typically 50+ characters

	minCommandTimeout = 1 * time.Second
	maxCommandTimeout = 5 * time.Minute

	maxCreateRate = 50 // stay under the platform's registration rate limit
)

var cronParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Validate checks the configuration values and returns all failures at once
// via errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateCommandTimeout(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateCreateRate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.validateSweepSchedule(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}
	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}
	return nil
}

func (c *Config) validateCommandTimeout() error {
	if c.CommandTimeout < minCommandTimeout {
		return fmt.Errorf(
			"COMMAND_TIMEOUT must be at least %v, got %v",
			minCommandTimeout, c.CommandTimeout,
		)
	}
	if c.CommandTimeout > maxCommandTimeout {
		return fmt.Errorf(
			"COMMAND_TIMEOUT must be at most %v, got %v",
			maxCommandTimeout, c.CommandTimeout,
		)
	}
	return nil
}

func (c *Config) validateCreateRate() error {
	if c.CreateRate <= 0 {
		return fmt.Errorf("COMMAND_CREATE_RATE must be positive, got %v", c.CreateRate)
	}
	if c.CreateRate > maxCreateRate {
		return fmt.Errorf(
			"COMMAND_CREATE_RATE must be at most %d, got %v",
			maxCreateRate, c.CreateRate,
		)
	}
	return nil
}

func (c *Config) validateSweepSchedule() error {
	if c.SweepSchedule == "" {
		return fmt.Errorf("COMPONENT_SWEEP_SCHEDULE cannot be empty")
	}
	if _, err := cronParser.Parse(c.SweepSchedule); err != nil {
		return fmt.Errorf("COMPONENT_SWEEP_SCHEDULE is not a valid cron spec: %w", err)
	}
	return nil
}
