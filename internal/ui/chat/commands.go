// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-chat/parley-tui/internal/export"
)

// =============================================================================
// ASYNC COMMANDS
// =============================================================================
// Every network call runs inside a tea.Cmd so Update never blocks. The
// API client carries the request timeout; commands use a background
// context and report outcomes as messages.

// sendCmd drives the full send protocol for one message.
func (m Model) sendCmd(text string) tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		result, err := ctrl.Send(context.Background(), text)
		return SendResultMsg{Result: result, Err: err}
	}
}

// historyCmd fetches the sidebar list.
func (m Model) historyCmd() tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		entries, err := ctrl.History(context.Background())
		return HistoryMsg{Entries: entries, Err: err}
	}
}

// loadCmd fetches a conversation and adopts it as the active session.
func (m Model) loadCmd(id string) tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		detail, err := ctrl.Load(context.Background(), id)
		return ConversationLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}

// shareCmd requests a share link for the active conversation.
func (m Model) shareCmd() tea.Cmd {
	ctrl := m.controller
	return func() tea.Msg {
		url, err := ctrl.Share(context.Background())
		return ShareResultMsg{URL: url, Err: err}
	}
}

// exportCmd writes the active conversation to disk. Server formats (txt,
// json) download the server's rendition; markdown is rendered locally
// from the on-screen transcript.
func (m Model) exportCmd() tea.Cmd {
	client := m.client
	conv := *m.conversation
	id := m.controller.ID()
	format := m.cfg.Export.Format
	outDir := m.cfg.Export.OutputDir

	return func() tea.Msg {
		var path string
		var err error
		switch format {
		case "md", "markdown":
			path, err = export.ExportToFile(&conv, format, outDir)
		default:
			path, err = client.DownloadExport(context.Background(), id, format, outDir)
		}
		return ExportCompleteMsg{Path: path, Err: err}
	}
}
