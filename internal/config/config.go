// Package config handles simulator configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/hopper/internal/controller"
)

// Config holds all simulator settings.
type Config struct {
	Simulation SimulationConfig    `yaml:"simulation"`
	Controller controller.Settings `yaml:"controller"`
	Unlocks    *controller.Unlocks `yaml:"unlocks,omitempty"` // Overrides the ability flags when set
	Level      string              `yaml:"level"`  // Path to a level YAML file
	Script     string              `yaml:"script"` // Path to an input script
	Watch      WatchConfig         `yaml:"watch"`
	Logging    LoggingConfig       `yaml:"logging"`
}

// SimulationConfig holds fixed-timestep settings.
type SimulationConfig struct {
	TickRate int  `yaml:"tick_rate"`
	Ticks    int  `yaml:"ticks"` // 0 runs until the script ends or forever without one
	Realtime bool `yaml:"realtime"`
}

// WatchConfig holds settings hot-reload options.
type WatchConfig struct {
	Enabled      bool   `yaml:"enabled"`
	SettingsFile string `yaml:"settings_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate: 64,
			Ticks:    0,
			Realtime: false,
		},
		Controller: controller.DefaultSettings(),
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values a file or flag may have broken.
func (c *Config) Validate() error {
	if c.Simulation.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	}
	if c.Simulation.Ticks < 0 {
		return fmt.Errorf("simulation.ticks must not be negative, got %d", c.Simulation.Ticks)
	}
	if c.Watch.Enabled && c.Watch.SettingsFile == "" {
		return errors.New("watch.enabled requires watch.settings_file")
	}
	if err := c.Controller.Validate(); err != nil {
		return fmt.Errorf("controller: %w", err)
	}
	return nil
}
