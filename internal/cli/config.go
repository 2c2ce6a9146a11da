// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command handler for the parley CLI.
//
// Handles "parley config" subcommands:
//
//	parley config show              Show current configuration
//	parley config set KEY VALUE    Set a value and save
//	parley config path              Print the config file location
//
// Settable keys: server.url, server.auth_token, server.timeout_seconds,
// ui.theme, export.format, export.output_dir.
package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/parley-chat/parley-tui/internal/config"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	if err := runConfig(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func runConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow()
	case "set":
		return configSet(args.ConfigKey, args.ConfigVal)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return &ConfigError{Op: "locate", Err: err}
		}
		fmt.Println(path)
		return nil
	default:
		return NewUsageError("config", "unknown subcommand "+args.Subcommand)
	}
}

func configShow() error {
	cfg, err := config.Load()
	if err != nil {
		return &ConfigError{Op: "load", Err: err}
	}

	fmt.Println("Configuration:")
	fmt.Printf("  server.url              %s\n", cfg.Server.URL)
	fmt.Printf("  server.auth_token       %s\n", maskToken(cfg.Server.AuthToken))
	fmt.Printf("  server.timeout_seconds  %d\n", cfg.Server.TimeoutSeconds)
	fmt.Printf("  ui.theme                %s\n", cfg.UI.Theme)
	fmt.Printf("  export.format           %s\n", cfg.Export.Format)
	fmt.Printf("  export.output_dir       %s\n", cfg.Export.OutputDir)
	return nil
}

func configSet(key, value string) error {
	if key == "" || value == "" {
		return NewUsageError("config set", "usage: parley config set KEY VALUE")
	}

	cfg, err := config.Load()
	if err != nil {
		return &ConfigError{Op: "load", Err: err}
	}

	switch key {
	case "server.url":
		cfg.Server.URL = value
	case "server.auth_token":
		cfg.Server.AuthToken = value
	case "server.timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return NewUsageError("config set", "timeout_seconds must be a positive integer")
		}
		cfg.Server.TimeoutSeconds = n
	case "ui.theme":
		cfg.UI.Theme = value
	case "export.format":
		cfg.Export.Format = value
	case "export.output_dir":
		cfg.Export.OutputDir = value
	default:
		return NewUsageError("config set", "unknown key "+key)
	}

	if err := cfg.Validate(); err != nil {
		return &ConfigError{Op: "validate", Err: err}
	}
	if err := config.Save(cfg); err != nil {
		return &ConfigError{Op: "save", Err: err}
	}

	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

// maskToken hides all but a hint of a secret for display.
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 4 {
		return "****"
	}
	return token[:2] + "****" + token[len(token)-2:]
}
