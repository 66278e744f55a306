// Package config loads claimtrack settings from a YAML file with environment
// overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration values.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`

	// DefaultEstimator is the user id assumed when a command does not name
	// one.
	DefaultEstimator string `yaml:"default_estimator"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// NoColor disables ANSI styling even on a TTY.
	NoColor bool `yaml:"no_color"`
}

func defaults() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	dir := filepath.Join(home, ".claimtrack")
	return Config{
		DBPath:   filepath.Join(dir, "claimtrack.db"),
		LogFile:  filepath.Join(dir, "claimtrack.log"),
		LogLevel: "INFO",
	}
}

// DefaultPath is where Load looks for the config file unless CLAIMTRACK_CONFIG
// overrides it.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".claimtrack", "config.yaml")
}

// Load reads the YAML config file, then applies environment overrides. A
// missing file is not an error; defaults apply.
func Load() (Config, error) {
	path := getEnv("CLAIMTRACK_CONFIG", DefaultPath())
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// fall through to env overrides
	case err != nil:
		return cfg, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.DBPath = getEnv("CLAIMTRACK_DB", cfg.DBPath)
	cfg.DefaultEstimator = getEnv("CLAIMTRACK_ESTIMATOR", cfg.DefaultEstimator)
	cfg.LogFile = getEnv("CLAIMTRACK_LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("CLAIMTRACK_LOG_LEVEL", cfg.LogLevel)
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
	return cfg, nil
}

// EnsureDirs creates the directories holding the database and log file.
func (c Config) EnsureDirs() error {
	for _, p := range []string{c.DBPath, c.LogFile} {
		if p == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", p, err)
		}
	}
	return nil
}

// Level parses the configured log level, defaulting to info.
func (c Config) Level() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
