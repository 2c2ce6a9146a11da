// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements command-line parsing and the non-TUI command
// handlers for parley: one-shot asks, the line-based chat REPL, export,
// and config management.
package cli
