// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"time"

	"github.com/parley-chat/parley-tui/internal/model"
)

// jsonDocument is the server's JSON export shape.
type jsonDocument struct {
	Title     string        `json:"title"`
	CreatedAt string        `json:"created_at"`
	Messages  []jsonMessage `json:"messages"`
}

type jsonMessage struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// JSONExporter renders the server's JSON export shape, pretty-printed.
type JSONExporter struct{}

// Export renders the conversation as JSON.
func (e *JSONExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	doc := jsonDocument{
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt.Format(time.RFC3339),
		Messages:  make([]jsonMessage, 0, len(conv.Messages)),
	}
	for _, msg := range conv.Messages {
		doc.Messages = append(doc.Messages, jsonMessage{
			Sender:    msg.Sender.String(),
			Content:   msg.Content,
			Timestamp: msg.Timestamp.Format(time.RFC3339),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// FileExtension returns ".json".
func (e *JSONExporter) FileExtension() string { return ".json" }

// MimeType returns the JSON MIME type.
func (e *JSONExporter) MimeType() string { return "application/json" }
