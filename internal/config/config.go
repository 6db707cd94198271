// Package config handles the configuration directory and environment
// settings.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppName is the application directory name.
const AppName = "todocli"

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path. Holds the session token.
	Dir string `env:"TODO_CONFIG_DIR"`

	// APIURL is the base URL of the remote to-do service.
	APIURL string `env:"TODO_API_URL" env-default:"https://fake-form.onrender.com/api/todo"`

	// HTTPTimeout is the per-request timeout for API calls.
	HTTPTimeout time.Duration `env:"TODO_HTTP_TIMEOUT" env-default:"10s"`

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New reads the environment and applies the config dir override. If
// configDir is empty and TODO_CONFIG_DIR is unset, the XDG default is
// used.
func New(configDir string) (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	if configDir != "" {
		cfg.Dir = configDir
	}
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfigDir()
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}
