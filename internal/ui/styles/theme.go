// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Mode names match the "theme" config key.
const (
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds every pre-built style the chat view renders with.
// Build one with New and rebuild it whenever the theme mode changes;
// styles are immutable once constructed.
type Theme struct {
	Mode string

	// Chrome
	Header    lipgloss.Style
	HeaderKey lipgloss.Style
	StatusBar lipgloss.Style
	Spinner   lipgloss.Style

	// Sidebar
	Sidebar           lipgloss.Style
	SidebarTitle      lipgloss.Style
	SidebarItem       lipgloss.Style
	SidebarItemActive lipgloss.Style

	// Transcript
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemLabel    lipgloss.Style
	UserText       lipgloss.Style
	SystemText     lipgloss.Style
	ErrorText      lipgloss.Style
	Timestamp      lipgloss.Style

	// Input
	InputBox    lipgloss.Style
	InputPrompt lipgloss.Style

	// Overlays
	Suggestion  lipgloss.Style
	ShareBox    lipgloss.Style
	ShareURL    lipgloss.Style
	ErrorDialog lipgloss.Style
	Help        lipgloss.Style
}

// New builds the style set for the given mode. Unknown modes fall back
// to dark, which is also the configured default. The adaptive palette is
// pinned to the mode rather than terminal background detection so the
// configured theme always wins.
func New(mode string) *Theme {
	if mode != ModeLight {
		mode = ModeDark
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())
	lipgloss.SetHasDarkBackground(mode == ModeDark)

	t := &Theme{Mode: mode}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)
	t.HeaderKey = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextMuted)
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Foreground(Amber)

	t.Sidebar = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
	t.SidebarItem = lipgloss.NewStyle().Foreground(TextSecondary)
	t.SidebarItemActive = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	t.UserLabel = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.AssistantLabel = lipgloss.NewStyle().Foreground(Indigo).Bold(true)
	t.SystemLabel = lipgloss.NewStyle().Foreground(TextMuted).Bold(true)
	t.UserText = lipgloss.NewStyle().Foreground(TextPrimary)
	t.SystemText = lipgloss.NewStyle().Foreground(TextMuted).Italic(true)
	t.ErrorText = lipgloss.NewStyle().Foreground(Rose)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)

	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	t.Suggestion = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Foreground(TextSecondary).
		Padding(0, 2)
	t.ShareBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Emerald).
		Padding(0, 2)
	t.ShareURL = lipgloss.NewStyle().Foreground(Emerald).Underline(true)
	t.ErrorDialog = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(Rose).
		Foreground(Rose).
		Padding(0, 2)
	t.Help = lipgloss.NewStyle().Foreground(TextMuted)

	return t
}

// GlamourStyle returns the glamour standard style name matching the
// theme mode.
func (t *Theme) GlamourStyle() string {
	if t.Mode == ModeLight {
		return "light"
	}
	return "dark"
}
