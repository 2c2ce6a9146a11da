// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: "http://127.0.0.1:0"})
	m := New(config.Default(), client, "/")
	m.width = 100
	m.height = 30
	return m
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model), cmd
}

func TestSubmitRendersUserBubbleBeforeNetwork(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello there")

	m, cmd := pressEnter(t, m)

	if len(m.conversation.Messages) != 1 {
		t.Fatalf("messages = %d, want 1 optimistic user bubble", len(m.conversation.Messages))
	}
	msg := m.conversation.Messages[0]
	if msg.Sender != model.SenderUser || msg.Content != "hello there" {
		t.Errorf("got %s %q, want user bubble with submitted text", msg.Sender, msg.Content)
	}
	if m.state != StateSending {
		t.Errorf("state = %v, want StateSending", m.state)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared after submit: %q", m.input.Value())
	}
	if cmd == nil {
		t.Error("expected a send command")
	}
}

func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   \t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.input.SetValue(tt.input)

			m, _ = pressEnter(t, m)

			if len(m.conversation.Messages) != 0 {
				t.Errorf("messages = %d, want 0", len(m.conversation.Messages))
			}
			if m.state != StateReady {
				t.Errorf("state = %v, want StateReady", m.state)
			}
		})
	}
}

func TestNumberKeyCopiesSuggestionIntoInput(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = updated.(Model)

	if m.input.Value() != emptyStateSuggestions[1] {
		t.Errorf("input = %q, want suggestion %q", m.input.Value(), emptyStateSuggestions[1])
	}
	if len(m.conversation.Messages) != 0 {
		t.Errorf("messages = %d, want 0; suggestion is staged, not sent", len(m.conversation.Messages))
	}
}

func TestNumberKeyTypesNormallyOutsideEmptyState(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("earlier")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'1'}})
	m = updated.(Model)

	if m.input.Value() != "1" {
		t.Errorf("input = %q, want literal \"1\"", m.input.Value())
	}
}

func TestSendFailureKeepsUserBubbleAndAddsErrorBubble(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = pressEnter(t, m)

	updated, _ := m.Update(SendResultMsg{Err: errors.New("backend is down")})
	m = updated.(Model)

	if m.state != StateReady {
		t.Fatalf("state = %v, want StateReady", m.state)
	}
	if len(m.conversation.Messages) != 2 {
		t.Fatalf("messages = %d, want user bubble plus error bubble", len(m.conversation.Messages))
	}
	if m.conversation.Messages[0].Sender != model.SenderUser {
		t.Error("user bubble was removed on failure")
	}
	errBubble := m.conversation.Messages[1]
	if !errBubble.IsError {
		t.Error("second message is not an error bubble")
	}
}

func TestSendFailureShowsServerMessageForApplicationErrors(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = pressEnter(t, m)

	appErr := &api.ClientError{Type: api.ErrTypeApplication, Message: "model unavailable"}
	updated, _ := m.Update(SendResultMsg{Err: appErr})
	m = updated.(Model)

	got := m.conversation.Messages[1].Content
	if got != "model unavailable" {
		t.Errorf("error bubble = %q, want the server-reported message", got)
	}
}

func TestSendSuccessAppendsReplyAndRefreshesHistory(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello")
	m, _ = pressEnter(t, m)

	updated, cmd := m.Update(SendResultMsg{
		Result: &session.SendResult{ConversationID: "7", Created: true, Reply: "hi!"},
	})
	m = updated.(Model)

	if len(m.conversation.Messages) != 2 {
		t.Fatalf("messages = %d, want user bubble plus reply", len(m.conversation.Messages))
	}
	reply := m.conversation.Messages[1]
	if reply.Sender != model.SenderModel || reply.Content != "hi!" {
		t.Errorf("got %s %q, want assistant reply", reply.Sender, reply.Content)
	}
	if m.conversation.ID != "7" {
		t.Errorf("conversation ID = %q, want 7", m.conversation.ID)
	}
	if cmd == nil {
		t.Error("expected a history refresh command after a successful send")
	}
}

func TestInFlightRejectionLeavesTranscriptAlone(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("first")
	m, _ = pressEnter(t, m)

	updated, _ := m.Update(SendResultMsg{Err: session.ErrSendInFlight})
	m = updated.(Model)

	if len(m.conversation.Messages) != 1 {
		t.Errorf("messages = %d, want only the original user bubble", len(m.conversation.Messages))
	}
	if m.statusMsg == "" {
		t.Error("expected a status message about the in-flight send")
	}
}

func TestSidebarFlattensMultilineTitles(t *testing.T) {
	m := newTestModel(t)
	m.sidebar = []model.Summary{{ID: "1", Title: "first\nsecond"}}

	out := m.renderSidebar(10)
	if !strings.Contains(out, "first second") {
		t.Errorf("sidebar output missing flattened title: %q", out)
	}
}

func TestHistoryReplacesSidebarWholesale(t *testing.T) {
	m := newTestModel(t)
	m.sidebar = []model.Summary{{ID: "1", Title: "Old"}}

	updated, _ := m.Update(HistoryMsg{Entries: []model.Summary{
		{ID: "2", Title: "Second"},
		{ID: "3", Title: "Third"},
	}})
	m = updated.(Model)

	if len(m.sidebar) != 2 {
		t.Fatalf("sidebar = %d entries, want 2", len(m.sidebar))
	}
	if m.sidebar[0].ID != "2" || m.sidebar[1].ID != "3" {
		t.Error("sidebar was not replaced with the fetched list")
	}
}

func TestHistoryFailureKeepsPreviousSidebar(t *testing.T) {
	m := newTestModel(t)
	m.sidebar = []model.Summary{{ID: "1", Title: "Kept"}}

	updated, _ := m.Update(HistoryMsg{Err: errors.New("unreachable")})
	m = updated.(Model)

	if len(m.sidebar) != 1 || m.sidebar[0].ID != "1" {
		t.Error("sidebar changed on a failed refresh")
	}
}

func TestLoadFailureFallsBackToEmptyState(t *testing.T) {
	m := newTestModel(t)
	m.conversation.Replace("5", "Loaded", []*model.Message{model.NewUserMessage("old")})

	updated, _ := m.Update(ConversationLoadedMsg{ID: "5", Err: errors.New("not found")})
	m = updated.(Model)

	if !m.conversation.IsEmpty() {
		t.Error("transcript should be empty after a failed load")
	}
	if m.conversation.Title != model.DefaultTitle {
		t.Errorf("title = %q, want %q", m.conversation.Title, model.DefaultTitle)
	}
}

func TestLoadSuccessReplacesTranscript(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AddUserMessage("draft that goes away")

	detail := &api.ConversationDetail{
		ID:    "9",
		Title: "Planning",
		Messages: []*model.Message{
			model.NewUserMessage("q"),
			model.NewModelMessage("a"),
		},
	}
	updated, _ := m.Update(ConversationLoadedMsg{ID: "9", Detail: detail})
	m = updated.(Model)

	if m.conversation.ID != "9" || m.conversation.Title != "Planning" {
		t.Errorf("conversation = %q %q, want the loaded one", m.conversation.ID, m.conversation.Title)
	}
	if len(m.conversation.Messages) != 2 {
		t.Errorf("messages = %d, want the loaded transcript only", len(m.conversation.Messages))
	}
}

func TestShareResult(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(ShareResultMsg{URL: "http://example.com/share/abc"})
	m = updated.(Model)
	if !m.showShare || m.shareURL != "http://example.com/share/abc" {
		t.Error("share overlay not shown with the returned URL")
	}

	updated, _ = m.Update(ShareResultMsg{Err: errors.New("share failed")})
	m = updated.(Model)
	if m.lastError == "" {
		t.Error("share failure should surface an error dialog")
	}
}

func TestConfigReloadAppliesThemeChange(t *testing.T) {
	m := newTestModel(t)
	if m.theme.Mode != "dark" {
		t.Fatalf("default theme = %q, want dark", m.theme.Mode)
	}

	cfg := config.Default()
	cfg.UI.Theme = "light"
	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = updated.(Model)

	if m.theme.Mode != "light" {
		t.Errorf("theme mode = %q after reload, want light", m.theme.Mode)
	}
}

func TestNewChatResetsSessionButKeepsSidebar(t *testing.T) {
	m := newTestModel(t)
	m.sidebar = []model.Summary{{ID: "1", Title: "Kept"}}
	m.conversation.Replace("1", "Kept", []*model.Message{model.NewUserMessage("hi")})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	m = updated.(Model)

	if !m.conversation.IsEmpty() {
		t.Error("transcript should be empty after starting a new chat")
	}
	if m.controller.Path() != "/" {
		t.Errorf("path = %q, want /", m.controller.Path())
	}
	if len(m.sidebar) != 1 {
		t.Error("sidebar should survive a new-chat reset")
	}
}
