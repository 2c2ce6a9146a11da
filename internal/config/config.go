// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parley.
//
// Configuration lives in ~/.parley/config.toml with sensible defaults and
// environment variable overrides. The theme preference is persisted here,
// the terminal counterpart of the browser client's localStorage key.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/parley-chat/parley-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parley configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	UI     UIConfig     `toml:"ui"`
	Export ExportConfig `toml:"export"`
}

// ServerConfig contains chat backend connection settings.
type ServerConfig struct {
	// URL is the chat server base URL.
	URL string `toml:"url"`
	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string `toml:"auth_token"`
	// TimeoutSeconds bounds each request; a send waits on AI inference,
	// so the default is generous.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark" or "light". Default: "dark".
	Theme string `toml:"theme"`
}

// ExportConfig contains conversation export settings.
type ExportConfig struct {
	// Format is the default export format: "txt", "json", or "md".
	Format string `toml:"format"`
	// OutputDir is where exported files are written.
	OutputDir string `toml:"output_dir"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://127.0.0.1:5000",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			Theme: "dark",
		},
		Export: ExportConfig{
			Format:    "txt",
			OutputDir: "./exports",
		},
	}
}

// fillDefaults fills zero values with defaults.
func fillDefaults(cfg *Config) {
	def := Default()
	if cfg.Server.URL == "" {
		cfg.Server.URL = def.Server.URL
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = def.Server.TimeoutSeconds
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = def.UI.Theme
	}
	if cfg.Export.Format == "" {
		cfg.Export.Format = def.Export.Format
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = def.Export.OutputDir
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the parley configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".parley"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, fills defaults, and applies environment
// overrides. A missing file is not an error; defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit path.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	fillDefaults(cfg)
	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the default path atomically.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveToPath(cfg, path)
}

// SaveToPath writes the configuration to an explicit path atomically.
func SaveToPath(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// =============================================================================
// OVERRIDES AND VALIDATION
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides:
// PARLEY_SERVER_URL, PARLEY_AUTH_TOKEN, PARLEY_THEME.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("PARLEY_SERVER_URL"); v != "" {
		c.Server.URL = v
	}
	if v := os.Getenv("PARLEY_AUTH_TOKEN"); v != "" {
		c.Server.AuthToken = v
	}
	if v := os.Getenv("PARLEY_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server.URL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url must be http or https, got %q", u.Scheme)
	}

	switch strings.ToLower(c.UI.Theme) {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme %q (valid: dark, light)", c.UI.Theme)
	}

	switch c.Export.Format {
	case "txt", "json", "md":
	default:
		return fmt.Errorf("invalid export format %q (valid: txt, json, md)", c.Export.Format)
	}

	return nil
}

// ToggleTheme flips the theme between dark and light.
func (c *Config) ToggleTheme() {
	if strings.ToLower(c.UI.Theme) == "dark" {
		c.UI.Theme = "light"
	} else {
		c.UI.Theme = "dark"
	}
}
