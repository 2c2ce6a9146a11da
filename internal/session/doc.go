// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the conversation view-model: the single piece
// of mutable session state (the active conversation ID) and the protocol
// that keeps it consistent with the server.
//
// All mutation is routed through Controller methods; no other package
// touches the session state directly. The controller is renderer-agnostic
// and drives both the TUI and the line-mode REPL.
package session
