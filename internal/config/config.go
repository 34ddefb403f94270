package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration, stored in ~/.time-tracker/config.yaml.
type Config struct {
	// DataDir holds the backing store file.
	DataDir string `mapstructure:"data_dir"`
	// StoreFile is the name of the backing file inside DataDir.
	StoreFile string `mapstructure:"store_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// ClearScreen redraws the live counter in place when stdout is a terminal.
	ClearScreen bool `mapstructure:"clear_screen"`
	// Tick is how often a running session reports its elapsed time.
	Tick time.Duration `mapstructure:"tick"`

	// Warning is a non-fatal problem met while loading, for the caller to log.
	Warning error `mapstructure:"-"`
}

const (
	// EnvPrefix prefixes environment overrides, e.g. TIME_TRACKER_DATA_DIR.
	EnvPrefix = "TIME_TRACKER"
	// DefaultStoreFile is the backing file name used when none is configured.
	DefaultStoreFile = "projects.json"
	DefaultLogLevel  = "warn"
	DefaultTick      = time.Second
)

// configTemplate is the annotated config written on first run.
const configTemplate = `# time-tracker configuration – ~/.time-tracker/config.yaml
#
# All settings are optional. Every key can also be set through the
# environment, e.g. TIME_TRACKER_DATA_DIR=/tmp/tt.

# Directory holding the project store. Defaults to ~/.time-tracker.
# data_dir: ~/.time-tracker

# Name of the JSON file inside data_dir that holds every project.
store_file: projects.json

# Log verbosity on stderr: debug, info, warn or error.
log_level: warn

# Redraw the running counter in place when attached to a terminal.
clear_screen: true

# How often "start" refreshes the elapsed time.
tick: 1s
`

// HomeDir returns ~/.time-tracker.
func HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".time-tracker"), nil
}

// FilePath returns the path to ~/.time-tracker/config.yaml.
func FilePath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func newViper(dataDir string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("data_dir", dataDir)
	v.SetDefault("store_file", DefaultStoreFile)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("clear_screen", true)
	v.SetDefault("tick", DefaultTick)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file at path, writing the annotated template when it
// does not exist yet. An empty path means FilePath(). Environment variables
// override the file.
func Load(path string) (Config, error) {
	defaultDir, err := HomeDir()
	if err != nil {
		return Config{}, err
	}
	if path == "" {
		path = filepath.Join(defaultDir, "config.yaml")
	}

	v := newViper(defaultDir)

	var warning error
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			warning = fmt.Errorf("could not create config file %s: %w", path, writeErr)
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	cfg.DataDir = expandHome(cfg.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDir
	}
	if cfg.StoreFile == "" {
		cfg.StoreFile = DefaultStoreFile
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	cfg.Warning = warning
	return cfg, nil
}

// Level maps LogLevel to a slog level, defaulting to warn.
func (c Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
