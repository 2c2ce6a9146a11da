// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains all rendering logic for the chat interface:
//   - Main view layout (header, sidebar, transcript, input, status bar)
//   - Message rendering for user, assistant, system, and error bubbles
//   - Overlay surfaces (share link, error dialog, help)
package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/util"
)

const sidebarWidth = 26

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete chat view. Layout: header + (sidebar |
// transcript) + input + status bar, with overlays layered on top.
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.renderHeader()
	input := m.renderInput()
	status := m.renderStatusBar()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(input) - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	if m.sidebarWidth() > 0 {
		sidebar := m.renderSidebar(bodyHeight)
		transcript := lipgloss.NewStyle().
			Height(bodyHeight).
			MaxHeight(bodyHeight).
			Render(m.renderTranscript())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, transcript)
	} else {
		body = lipgloss.NewStyle().
			Height(bodyHeight).
			MaxHeight(bodyHeight).
			Render(m.renderTranscript())
	}

	baseView := lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)

	if m.showShare {
		return m.renderOverlay(baseView, m.renderShareBox())
	}
	if m.lastError != "" {
		return m.renderOverlay(baseView, m.renderErrorDialog())
	}
	return baseView
}

// sidebarWidth is 0 on narrow terminals, hiding the sidebar entirely.
func (m Model) sidebarWidth() int {
	if m.width < 80 {
		return 0
	}
	return sidebarWidth
}

// =============================================================================
// CHROME
// =============================================================================

func (m Model) renderHeader() string {
	title := m.conversation.Title
	if title == "" {
		title = model.DefaultTitle
	}
	left := m.theme.Header.Render("parley")
	middle := m.theme.Header.Render(util.TruncateWidth(util.CollapseLine(title), m.width/2))
	right := m.theme.HeaderKey.Render(m.controller.Path())

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(middle) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	pad := m.theme.HeaderKey.Render(strings.Repeat(" ", gap))
	return left + middle + pad + right
}

func (m Model) renderSidebar(height int) string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Conversations"))
	b.WriteString("\n\n")

	if len(m.sidebar) == 0 {
		b.WriteString(m.theme.Help.Render("No conversations yet"))
	}

	activeID := m.controller.ID()
	for _, entry := range m.sidebar {
		// Server titles can carry newlines; flatten before truncating.
		label := util.TruncateWidth(util.CollapseLine(entry.Title), sidebarWidth-4)
		if entry.ID == activeID {
			b.WriteString(m.theme.SidebarItemActive.Render("> " + label))
		} else {
			b.WriteString(m.theme.SidebarItem.Render("  " + label))
		}
		b.WriteString("\n")
	}

	return m.theme.Sidebar.
		Width(sidebarWidth - 2).
		Height(height).
		MaxHeight(height).
		Render(b.String())
}

func (m Model) renderInput() string {
	width := m.width - 4
	if width < 10 {
		width = 10
	}
	prompt := m.theme.InputPrompt.Render(m.input.View())
	return m.theme.InputBox.Width(width).Render(prompt)
}

func (m Model) renderStatusBar() string {
	var left string
	switch m.state {
	case StateSending:
		left = m.spinner.View() + " Waiting for reply..."
	case StateLoading:
		left = m.spinner.View() + " Loading conversation..."
	default:
		if m.statusMsg != "" {
			left = m.statusMsg
		} else {
			left = "Ready"
		}
	}

	right := m.theme.Help.Render("Enter send · C-n new · Tab switch · C-s share · C-e export · C-t theme · ? help")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return m.theme.StatusBar.Width(m.width).Render(left)
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

func (m Model) renderTranscript() string {
	if m.conversation.IsEmpty() && m.state == StateReady {
		return m.renderEmptyState()
	}
	return m.viewport.View()
}

// renderMessages builds the viewport content from the transcript. The
// whole transcript is re-rendered on every change; messages are never
// mutated in place.
func (m Model) renderMessages() string {
	var b strings.Builder
	for i, msg := range m.conversation.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.renderMessage(msg))
	}
	return b.String()
}

func (m Model) renderMessage(msg *model.Message) string {
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch {
	case msg.IsError:
		label := m.theme.SystemLabel.Render("Error") + " " + ts
		return label + "\n" + m.theme.ErrorText.Render(msg.Content)

	case msg.Sender == model.SenderUser:
		label := m.theme.UserLabel.Render(msg.Sender.DisplayName()) + " " + ts
		return label + "\n" + m.theme.UserText.Render(msg.Content)

	case msg.Sender == model.SenderModel:
		label := m.theme.AssistantLabel.Render(msg.Sender.DisplayName()) + " " + ts
		return label + "\n" + m.renderMarkdown(msg.Content)

	default:
		label := m.theme.SystemLabel.Render(msg.Sender.DisplayName()) + " " + ts
		return label + "\n" + m.theme.SystemText.Render(msg.Content)
	}
}

// renderMarkdown renders assistant replies through glamour, falling back
// to plain text when the renderer is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return m.theme.UserText.Render(content)
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.UserText.Render(content)
	}
	return strings.TrimRight(out, "\n")
}

// emptyStateSuggestions are the starter prompts shown on the empty
// transcript. Pressing the matching number key copies one into the input.
var emptyStateSuggestions = []string{
	"Explain a concept in simple terms",
	"Help me draft an email",
	"Summarize a piece of text",
	"Brainstorm ideas for a project",
}

func (m Model) renderEmptyState() string {
	var b strings.Builder
	b.WriteString("Start a new conversation\n\n")
	for i, s := range emptyStateSuggestions {
		b.WriteString(m.theme.Suggestion.Render(fmt.Sprintf("%d. %s", i+1, s)))
		b.WriteString("\n")
	}
	box := b.String()

	return lipgloss.Place(
		m.viewport.Width, m.viewport.Height,
		lipgloss.Center, lipgloss.Center,
		box,
	)
}

// =============================================================================
// OVERLAYS
// =============================================================================

func (m Model) renderShareBox() string {
	var b strings.Builder
	b.WriteString("Share link ready\n\n")
	b.WriteString(m.theme.ShareURL.Render(m.shareURL))
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("Esc to dismiss"))
	return m.theme.ShareBox.Render(b.String())
}

func (m Model) renderErrorDialog() string {
	var b strings.Builder
	b.WriteString("Something went wrong\n\n")
	b.WriteString(m.lastError)
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("Esc to dismiss"))
	return m.theme.ErrorDialog.Render(b.String())
}

// renderOverlay replaces the screen with a centered overlay box. The
// base view is redrawn in full once the overlay is dismissed.
func (m Model) renderOverlay(_ string, overlay string) string {
	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		overlay,
	)
}

func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")

	for _, group := range m.keyMap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Help.Render("Press ? or Esc to close"))

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		m.theme.Suggestion.Render(b.String()),
	)
}
