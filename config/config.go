// Package config loads the scoreboard service configuration from a YAML file
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/justinjudd/scoreboard/models"
	"github.com/justinjudd/scoreboard/rules"
)

// ListenEnv overrides Config.Listen when set
const ListenEnv = "SCOREBOARD_LISTEN"

// Config is the service configuration
type Config struct {
	Listen        string              `yaml:"listen"`
	Database      string              `yaml:"database"`
	UndoLimit     int                 `yaml:"undoLimit"`
	LogLevel      string              `yaml:"logLevel"`
	DefaultFormat models.TennisFormat `yaml:"defaultFormat"`
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		Listen:        ":4001",
		Database:      "scoreboard.db",
		UndoLimit:     100,
		LogLevel:      "info",
		DefaultFormat: models.TennisFormat_BEST_OF_3,
	}
}

// Load reads the file at path over the defaults. An empty path yields the defaults.
// The environment override is applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("unable to read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}

	if listen := os.Getenv(ListenEnv); listen != "" {
		cfg.Listen = listen
	}

	return cfg, cfg.Validate()
}

// Validate checks the values that cannot be defaulted
func (c Config) Validate() error {
	if c.Listen == "" {
		return errors.New("config: listen address is empty")
	}
	if c.Database == "" {
		return errors.New("config: database path is empty")
	}
	if c.UndoLimit < 0 {
		return fmt.Errorf("config: undoLimit must not be negative, got %d", c.UndoLimit)
	}
	if _, err := rules.GetConfig(c.DefaultFormat); err != nil {
		return fmt.Errorf("config: defaultFormat: %w", err)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level maps LogLevel onto an slog level
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: logLevel: %w", err)
	}
	return l, nil
}
