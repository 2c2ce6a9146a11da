// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/parley-chat/parley-tui/internal/model"
)

// TextExporter renders the server's plain-text export shape:
//
//	Title: {title}
//
//	[{Sender} - {YYYY-MM-DD HH:MM}]
//	{content}
type TextExporter struct{}

// Export renders the conversation as plain text.
func (e *TextExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Title: %s\n\n", conv.Title)
	for _, msg := range conv.Messages {
		fmt.Fprintf(&buf, "[%s - %s]\n%s\n\n",
			senderLabel(msg.Sender),
			msg.Timestamp.Format("2006-01-02 15:04"),
			msg.Content,
		)
	}
	return buf.Bytes(), nil
}

// FileExtension returns ".txt".
func (e *TextExporter) FileExtension() string { return ".txt" }

// MimeType returns the plain text MIME type.
func (e *TextExporter) MimeType() string { return "text/plain" }
