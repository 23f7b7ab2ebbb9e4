// Package config manages abook runtime settings: where the address book is
// stored, which storage backend it uses and how verbosely it logs.
// Settings come from a .abook.toml file, ABOOK_* environment variables and
// built-in defaults, in that order of precedence (environment first).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kilupskalvis/abook/internal/store"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	ConfigFile     = ".abook.toml"
	DefaultDataDir = ".abook"
	EnvPrefix      = "ABOOK"
)

// Config represents the abook runtime configuration
type Config struct {
	DataDir  string `toml:"data_dir" mapstructure:"data_dir"`
	Backend  string `toml:"backend" mapstructure:"backend"`
	LogLevel string `toml:"log_level" mapstructure:"log_level"`
	path     string // config file in use, empty when running on defaults
}

// FindConfigFile looks for .abook.toml in dir and each of its parents, then
// in the home directory.
func FindConfigFile(dir string) (string, bool) {
	for {
		p := filepath.Join(dir, ConfigFile)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDataDir
	}
	return filepath.Join(home, DefaultDataDir)
}

// Load resolves the configuration for a process started in dir
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("backend", string(store.BackendBolt))
	v.SetDefault("log_level", "warn")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	path, found := FindConfigFile(dir)
	if found {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.path = path
	cfg.DataDir = cfg.resolve(cfg.DataDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolve expands a leading ~ and anchors relative paths at the directory of
// the config file
func (c *Config) resolve(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if !filepath.IsAbs(p) && c.path != "" {
		p = filepath.Join(filepath.Dir(c.path), p)
	}
	return p
}

// Validate checks the backend and log level names
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if _, err := store.ParseBackend(c.Backend); err != nil {
		return err
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q (want debug, info, warn or error)", c.LogLevel)
	}
	return nil
}

// StorageBackend returns the configured backend
func (c *Config) StorageBackend() store.Backend {
	b, _ := store.ParseBackend(c.Backend)
	return b
}

// Path returns the config file in use, or "" when none was found
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to its file
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("no config file to save to")
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(c.path, data, 0644)
}

// Initialize writes a new .abook.toml in dir pointing at dataDir and creates
// the data directory.
func Initialize(dir, dataDir string, backend store.Backend) (*Config, error) {
	path := filepath.Join(dir, ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("abook config already exists at %s", path)
	}
	if _, err := store.ParseBackend(string(backend)); err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:  dataDir,
		Backend:  string(backend),
		LogLevel: "warn",
		path:     path,
	}
	if err := os.MkdirAll(cfg.resolve(dataDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	cfg.DataDir = cfg.resolve(dataDir)
	return cfg, nil
}
