package config

import (
	"os"
	"path/filepath"
	"sync"
)

// Config is the loaded, merged settings tree plus the paths it was
// built from. It is safe for concurrent reads via Snapshot; mutation
// only happens during Load.
type Config struct {
	mu       sync.RWMutex
	settings Settings

	userPath    string
	projectPath string
}

// Option configures New before its first Load.
type Option func(*Config)

// WithUserConfigPath overrides the user-level config file path
// (default: "$XDG_CONFIG_HOME/forge/config.toml" or
// "~/.config/forge/config.toml").
func WithUserConfigPath(path string) Option {
	return func(c *Config) { c.userPath = path }
}

// WithProjectConfigPath sets a project-level config file path, merged
// on top of the user config (e.g. ".forge/config.toml" in a workspace
// root).
func WithProjectConfigPath(path string) Option {
	return func(c *Config) { c.projectPath = path }
}

// New returns a Config seeded with built-in defaults; call Load to
// layer the user/project files and environment on top.
func New(opts ...Option) *Config {
	c := &Config{settings: Default()}
	for _, opt := range opts {
		opt(c)
	}
	if c.userPath == "" {
		c.userPath = defaultUserConfigPath()
	}
	return c
}

// Load reads the user config, then the project config, then the
// environment, merging each layer on top of the ones before it (later
// layers win field by field). A missing file at either path is not an
// error.
func (c *Config) Load() error {
	loader := NewTOMLLoader(nil)

	doc, err := loader.LoadFile(c.userPath)
	if err != nil {
		return err
	}

	if c.projectPath != "" {
		projectDoc, err := loader.LoadFile(c.projectPath)
		if err != nil {
			return err
		}
		doc = DeepMerge(doc, projectDoc)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	settings := Default()
	if err := decodeInto(doc, &settings); err != nil {
		return err
	}
	applyEnv(&settings, nil)
	c.settings = settings
	return nil
}

// Snapshot returns a copy of the current settings tree. Mutating the
// returned value never affects the Config; callers that want to
// change a setting go through a host-level settings-editor command,
// not this accessor.
func (c *Config) Snapshot() Settings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

func defaultUserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "forge", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "forge", "config.toml")
}
