package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
)

// Config file locations. The project file is searched upward from the
// working directory; the user file lives under the home directory.
const (
	ProjectConfigFile = "jskos.yaml"
	UserConfigDir     = ".config/jskos"
	UserConfigFile    = "config.yaml"
)

// Loader assembles the effective configuration from layered sources.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load builds the configuration by merging, in order of increasing
// precedence: built-in defaults, the user config, and the nearest
// project config. The merged result is validated before returning.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := l.userConfigPath(); path != "" {
		l.mergeFile(cfg, path, false)
	}
	if path := l.findProjectConfig(); path != "" {
		l.mergeFile(cfg, path, true)
	} else {
		l.logger.Debug("No project config found")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile merges one config layer into cfg. A missing file is only
// worth a warning when the caller located it explicitly.
func (l *Loader) mergeFile(cfg *Config, path string, located bool) {
	layer, err := LoadFromFile(path)
	if err != nil {
		if located || !errors.Is(err, os.ErrNotExist) {
			l.logger.Warn("Failed to load config layer",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return
	}
	l.logger.Debug("Loaded config layer", slog.String("path", path))
	cfg.Merge(layer)
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks from the working directory toward the
// filesystem root and returns the first jskos.yaml it finds.
func (l *Loader) findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
