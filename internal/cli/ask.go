// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One-shot question command for the parley CLI.
//
// Handles "parley ask" which sends a single message and prints the
// reply. With no --conversation flag a new conversation is created
// server-side; the printed ID lets the user continue it later.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/session"
)

// HandleAsk handles the "ask" command.
func HandleAsk(args Args) {
	if err := runAsk(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func runAsk(args Args) error {
	if strings.TrimSpace(args.Query) == "" {
		return NewUsageError("ask", "a message is required")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)
	ctrl := session.NewController(client)

	ctx := context.Background()
	if args.ConversationID != "" {
		if _, err := ctrl.Load(ctx, args.ConversationID); err != nil {
			return fmt.Errorf("open conversation %s: %w", args.ConversationID, err)
		}
	}

	result, err := ctrl.Send(ctx, args.Query)
	if err != nil {
		return err
	}

	fmt.Println(renderReply(result.Reply, cfg.UI.Theme))
	if result.Created && !args.Quiet {
		fmt.Fprintf(os.Stderr, "\n(conversation %s; continue with: parley ask -c %s \"...\")\n",
			result.ConversationID, result.ConversationID)
	}
	return nil
}

// loadConfig loads the config file and applies CLI and environment
// overrides, in that order of increasing precedence.
func loadConfig(args Args) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, &ConfigError{Op: "load", Err: err}
	}
	cfg.ApplyEnvOverrides()
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Op: "validate", Err: err}
	}
	return cfg, nil
}

// newAPIClient builds the HTTP client from resolved config.
func newAPIClient(cfg *config.Config) *api.Client {
	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:   cfg.Server.URL,
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		AuthToken: cfg.Server.AuthToken,
	})
}
