// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Send protocol: conversation creation and send results
//   - History: sidebar list refreshes
//   - Load: adopting a previously created conversation
//   - Share and export: link generation and file export results
//   - Config: hot-reload notifications
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/session"
)

// =============================================================================
// SEND PROTOCOL MESSAGES
// =============================================================================

// ConversationCreatedMsg signals that a send established a new
// conversation. It arrives mid-send, after the create call succeeds and
// before the reply comes back, so the sidebar can refresh immediately.
// Delivered via program.Send from the controller's created hook.
type ConversationCreatedMsg struct {
	ID string
}

// SendResultMsg delivers the outcome of a send.
type SendResultMsg struct {
	Result *session.SendResult
	Err    error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryMsg delivers the sidebar list. On success the previous list is
// replaced wholesale; on failure the previous rendering stays.
type HistoryMsg struct {
	Entries []model.Summary
	Err     error
}

// =============================================================================
// LOAD MESSAGES
// =============================================================================

// LoadConversationMsg requests that a conversation be fetched and
// adopted. An empty ID resets to the new-chat state.
type LoadConversationMsg struct {
	ID string
}

// ConversationLoadedMsg delivers a fetched conversation. A nil Detail
// (load failure or explicit reset) means the view falls back to the
// empty new-chat state.
type ConversationLoadedMsg struct {
	ID     string
	Detail *api.ConversationDetail
	Err    error
}

// =============================================================================
// SHARE AND EXPORT MESSAGES
// =============================================================================

// ShareResultMsg delivers a share link or the error that prevented one.
type ShareResultMsg struct {
	URL string
	Err error
}

// ExportCompleteMsg reports where an export was written.
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a freshly loaded config after a change on
// disk. Delivered via program.Send from the config watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
}
