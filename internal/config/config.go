// Package config loads checker settings from an optional TOML file.
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

type Config struct {
	Log   Log   `toml:"log"`
	Check Check `toml:"check"`
}

type Log struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level"`
	// Sections are the log section prefixes enabled below warn level
	Sections []string `toml:"sections"`
}

type Check struct {
	// MaxWorkers caps parallel unit checking; 0 means one worker per unit
	MaxWorkers int `toml:"max_workers"`
}

func Default() Config {
	return Config{
		Log: Log{Level: "error"},
	}
}

// ParseLevel maps a config level name to its slog level.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return 0, false
	}
}

// Load reads path when it exists; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "could not parse config at %s", path)
	}
	return cfg, nil
}
