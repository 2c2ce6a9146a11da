// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection and reply rendering for CLI output.
package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal. Piped
// output gets plain text so replies stay machine-readable.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderReply renders an assistant reply for terminal display. Markdown
// formatting applies only on a real terminal; otherwise the raw text is
// returned unchanged.
func renderReply(reply, theme string) string {
	if !IsTerminal() {
		return reply
	}

	style := "dark"
	if theme == "light" {
		style = "light"
	}

	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w - 2
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return reply
	}
	out, err := r.Render(reply)
	if err != nil {
		return reply
	}
	return strings.TrimRight(out, "\n")
}
