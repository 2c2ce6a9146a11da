// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.URL != "http://127.0.0.1:5000" {
		t.Errorf("unexpected default server URL %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("default theme must be dark, got %q", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected default theme, got %q", cfg.UI.Theme)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.UI.Theme = "light"
	cfg.Server.URL = "http://chat.internal:8080"
	if err := SaveToPath(cfg, path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme preference not persisted, got %q", loaded.UI.Theme)
	}
	if loaded.Server.URL != "http://chat.internal:8080" {
		t.Errorf("server URL not persisted, got %q", loaded.Server.URL)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PARLEY_SERVER_URL", "http://other:9000")
	t.Setenv("PARLEY_THEME", "light")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromPath failed: %v", err)
	}
	if cfg.Server.URL != "http://other:9000" {
		t.Errorf("env override not applied, got %q", cfg.Server.URL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("theme env override not applied, got %q", cfg.UI.Theme)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"bad url", func(c *Config) { c.Server.URL = "not a url" }, true},
		{"ftp scheme", func(c *Config) { c.Server.URL = "ftp://host" }, true},
		{"bad theme", func(c *Config) { c.UI.Theme = "solarized" }, true},
		{"bad format", func(c *Config) { c.Export.Format = "pdf" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToggleTheme(t *testing.T) {
	cfg := Default()
	cfg.ToggleTheme()
	if cfg.UI.Theme != "light" {
		t.Errorf("expected light after toggle, got %q", cfg.UI.Theme)
	}
	cfg.ToggleTheme()
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected dark after second toggle, got %q", cfg.UI.Theme)
	}
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := SaveToPath(Default(), path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	var mu sync.Mutex
	var got *Config
	loaded := make(chan struct{}, 1)

	w, err := NewWatcher(path, func(cfg *Config) {
		mu.Lock()
		got = cfg
		mu.Unlock()
		select {
		case loaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	updated := Default()
	updated.UI.Theme = "light"
	if err := SaveToPath(updated, path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	select {
	case <-loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not observe the config change")
	}

	mu.Lock()
	defer mu.Unlock()
	if got == nil || got.UI.Theme != "light" {
		t.Errorf("reloaded config not delivered, got %+v", got)
	}
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := SaveToPath(Default(), path); err != nil {
		t.Fatalf("SaveToPath failed: %v", err)
	}

	called := make(chan struct{}, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case called <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()
	if err := w.Watch(); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("theme = ["), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	select {
	case <-called:
		t.Error("invalid config must not be delivered")
	case <-time.After(1 * time.Second):
	}
}
