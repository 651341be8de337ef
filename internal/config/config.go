// Package config provides YAML-based configuration loading for the
// 2048 platform: board size, tick rate, storage, SSH server and logging.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Board size limits accepted from configuration.
const (
	MinSides = 2
	MaxSides = 8
)

// Config is the complete application configuration.
type Config struct {
	Board   BoardConfig   `yaml:"board"`
	Runtime RuntimeConfig `yaml:"runtime"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// BoardConfig selects the default board.
type BoardConfig struct {
	Sides int `yaml:"sides"` // Preselected board size
}

// RuntimeConfig controls the simulation loop.
type RuntimeConfig struct {
	TickRate int `yaml:"tick_rate"` // Ticks per second
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" is expanded
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks every section and reports all problems at once.
func (c Config) Validate() error {
	var errs []error

	if c.Board.Sides < MinSides || c.Board.Sides > MaxSides {
		errs = append(errs, fmt.Errorf("%w: board.sides must be in [%d, %d], got %d", ErrInvalidConfig, MinSides, MaxSides, c.Board.Sides))
	}
	if c.Runtime.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: runtime.tick_rate must be positive, got %d", ErrInvalidConfig, c.Runtime.TickRate))
	}
	if c.Storage.Path == "" {
		errs = append(errs, fmt.Errorf("%w: storage.path is empty", ErrInvalidConfig))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: server.idle_timeout is negative", ErrInvalidConfig))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err))
	}

	return errors.Join(errs...)
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	return log.ParseLevel(c.Log.Level)
}
