// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"bytes"
	"fmt"

	"github.com/parley-chat/parley-tui/internal/model"
)

// MarkdownExporter renders a readable Markdown transcript. Assistant
// replies are already markdown, so their content passes through verbatim.
type MarkdownExporter struct{}

// Export renders the conversation as Markdown.
func (e *MarkdownExporter) Export(conv *model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", conv.Title)
	fmt.Fprintf(&buf, "*Exported from parley, %d messages*\n\n---\n\n", len(conv.Messages))

	for i, msg := range conv.Messages {
		fmt.Fprintf(&buf, "**%s** (%s)\n\n%s\n\n",
			msg.Sender.DisplayName(),
			msg.Timestamp.Format("2006-01-02 15:04"),
			msg.Content,
		)
		if i < len(conv.Messages)-1 {
			buf.WriteString("---\n\n")
		}
	}

	return buf.Bytes(), nil
}

// FileExtension returns ".md".
func (e *MarkdownExporter) FileExtension() string { return ".md" }

// MimeType returns the Markdown MIME type.
func (e *MarkdownExporter) MimeType() string { return "text/markdown" }
