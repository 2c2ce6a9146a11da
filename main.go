// parley - a terminal client for your chat server.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/cli"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/logging"
	"github.com/parley-chat/parley-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async deliveries (created-hook, config
// watcher)
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdAsk:
		cli.HandleAsk(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdExport:
		cli.HandleExport(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	default:
		runTUI(args)
	}
}

// runTUI starts the TUI interface.
func runTUI(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}
	cfg.ApplyEnvOverrides()
	if args.Server != "" {
		cfg.Server.URL = args.Server
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitConfigError)
	}

	// Stderr belongs to the TUI while it runs; logs go to a file.
	if dir, err := config.ConfigDir(); err == nil {
		if err := logging.RedirectToFile(filepath.Join(dir, "parley.log")); err != nil {
			logging.Warnf("log redirect: %v", err)
		}
	}
	defer logging.Close()
	logging.SetVerbose(args.Verbose)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:   cfg.Server.URL,
		Timeout:   time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		AuthToken: cfg.Server.AuthToken,
	})

	m := chat.New(cfg, client, args.ConversationID)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// The created hook fires on the sending goroutine, mid-send; the
	// sidebar refresh reaches the UI through the program mailbox.
	m.Controller().SetOnCreated(func(id string) {
		programMu.Lock()
		ref := programRef
		programMu.Unlock()
		if ref != nil {
			ref.Send(chat.ConversationCreatedMsg{ID: id})
		}
	})

	// Config hot reload: edits to the config file restyle the running
	// UI without a restart.
	if path, err := config.ConfigPath(); err == nil {
		watcher, werr := config.NewWatcher(path, func(next *config.Config) {
			programMu.Lock()
			ref := programRef
			programMu.Unlock()
			if ref != nil {
				ref.Send(chat.ConfigReloadedMsg{Config: next})
			}
		})
		if werr != nil {
			logging.Warnf("config watcher: %v", werr)
		} else {
			if werr := watcher.Watch(); werr != nil {
				logging.Warnf("config watcher: %v", werr)
			}
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running parley: %v\n", err)
		os.Exit(1)
	}
}
