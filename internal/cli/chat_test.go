// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/session"
)

func TestExportMarkdownFailureKeepsActiveConversation(t *testing.T) {
	// First fetch succeeds so a conversation becomes active; every
	// fetch after that fails, simulating a blip during /export md.
	var loaded bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !loaded {
			loaded = true
			json.NewEncoder(w).Encode(map[string]any{
				"title": "Trip planning",
				"messages": []map[string]string{
					{"content": "Where should I go?", "sender": "user"},
				},
			})
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "temporarily unavailable"})
	}))
	defer srv.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: srv.URL})
	ctrl := session.NewController(client)
	if _, err := ctrl.Load(context.Background(), "42"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := &chatSession{cfg: config.Default(), client: client, ctrl: ctrl}

	if _, err := s.exportConversation("md"); err == nil {
		t.Fatal("expected export error")
	}
	if got := ctrl.ID(); got != "42" {
		t.Errorf("active conversation = %q, want %q after failed export", got, "42")
	}
}
