// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/parley-chat/parley-tui/internal/model"
)

func testConversation() *model.Conversation {
	conv := model.NewConversation()
	conv.ID = "42"
	conv.Title = "Trip planning"
	conv.CreatedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	user := model.NewUserMessage("Where should I go?")
	user.Timestamp = time.Date(2024, 3, 1, 9, 1, 0, 0, time.UTC)
	reply := model.NewModelMessage("Try **Lisbon**.")
	reply.Timestamp = time.Date(2024, 3, 1, 9, 2, 0, 0, time.UTC)

	conv.AddMessage(user)
	conv.AddMessage(reply)
	return conv
}

func TestNewExporter(t *testing.T) {
	for _, format := range []string{"txt", "text", "json", "md", "markdown"} {
		if _, err := NewExporter(format); err != nil {
			t.Errorf("NewExporter(%q) failed: %v", format, err)
		}
	}
	if _, err := NewExporter("pdf"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTextExportMatchesServerShape(t *testing.T) {
	out, err := (&TextExporter{}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "Title: Trip planning\n\n") {
		t.Errorf("missing title header: %q", text)
	}
	if !strings.Contains(text, "[User - 2024-03-01 09:01]\nWhere should I go?\n\n") {
		t.Errorf("user block malformed: %q", text)
	}
	if !strings.Contains(text, "[Model - 2024-03-01 09:02]\nTry **Lisbon**.\n\n") {
		t.Errorf("model block malformed: %q", text)
	}
}

func TestJSONExportMatchesServerShape(t *testing.T) {
	out, err := (&JSONExporter{}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var doc struct {
		Title     string `json:"title"`
		CreatedAt string `json:"created_at"`
		Messages  []struct {
			Sender    string `json:"sender"`
			Content   string `json:"content"`
			Timestamp string `json:"timestamp"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if doc.Title != "Trip planning" {
		t.Errorf("unexpected title %q", doc.Title)
	}
	if doc.CreatedAt != "2024-03-01T09:00:00Z" {
		t.Errorf("created_at not RFC3339: %q", doc.CreatedAt)
	}
	if len(doc.Messages) != 2 || doc.Messages[0].Sender != "user" || doc.Messages[1].Sender != "model" {
		t.Errorf("messages malformed: %+v", doc.Messages)
	}
}

func TestMarkdownExport(t *testing.T) {
	out, err := (&MarkdownExporter{}).Export(testConversation())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	text := string(out)
	if !strings.HasPrefix(text, "# Trip planning\n") {
		t.Errorf("missing title heading: %q", text)
	}
	if !strings.Contains(text, "**You**") || !strings.Contains(text, "**Assistant**") {
		t.Errorf("missing sender labels: %q", text)
	}
	// Assistant markdown passes through untouched.
	if !strings.Contains(text, "Try **Lisbon**.") {
		t.Errorf("assistant markdown mangled: %q", text)
	}
}

func TestExportRejectsEmptyConversation(t *testing.T) {
	for _, format := range Formats() {
		exporter, err := NewExporter(format)
		if err != nil {
			t.Fatalf("NewExporter(%q) failed: %v", format, err)
		}

		if _, err := exporter.Export(nil); err == nil {
			t.Errorf("%s: expected error for nil conversation", format)
		}
		if _, err := exporter.Export(model.NewConversation()); err == nil {
			t.Errorf("%s: expected error for empty conversation", format)
		}
	}
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportToFile(testConversation(), "txt", dir)
	if err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}
	if !strings.HasSuffix(path, "conversation_42.txt") {
		t.Errorf("unexpected file name %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), "Title: Trip planning") {
		t.Error("file content missing transcript")
	}
}

func TestExportToFileUnsupportedFormat(t *testing.T) {
	if _, err := ExportToFile(testConversation(), "docx", t.TempDir()); err == nil {
		t.Error("expected error for unsupported format")
	}
}
