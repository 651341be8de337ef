package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Sides: 4,
		},
		Runtime: RuntimeConfig{
			TickRate: 60,
		},
		Storage: StorageConfig{
			Path: "~/.t2048/scores.db",
		},
		Server: ServerConfig{
			Address:     ":2048",
			HostKey:     ".ssh/t2048_host_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
