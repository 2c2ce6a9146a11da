// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export renders a conversation transcript to a file.
//
// The txt and json writers mirror the server's export shapes exactly, so a
// locally written file is interchangeable with a downloaded one. Markdown
// is client-only; the server never renders it.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/parley-chat/parley-tui/internal/model"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for conversation exporters.
type Exporter interface {
	// Export converts a conversation to the target format.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// NewExporter returns the exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "txt", "text":
		return &TextExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: txt, json, md)", format)
	}
}

// Formats lists the supported local format names.
func Formats() []string {
	return []string{"txt", "json", "md"}
}

// =============================================================================
// FILE EXPORT
// =============================================================================

// ExportToFile renders a conversation and writes it to outDir. Returns the
// written file path.
func ExportToFile(conv *model.Conversation, format, outDir string) (string, error) {
	exporter, err := NewExporter(format)
	if err != nil {
		return "", err
	}

	content, err := exporter.Export(conv)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	name := conv.ID
	if name == "" {
		name = "unsaved"
	}
	outPath := filepath.Join(outDir, "conversation_"+name+exporter.FileExtension())
	if err := os.WriteFile(outPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return outPath, nil
}

// validate rejects conversations with nothing to export.
func validate(conv *model.Conversation) error {
	if conv == nil {
		return errors.New("conversation is nil")
	}
	if len(conv.Messages) == 0 {
		return errors.New("conversation has no messages")
	}
	return nil
}

// senderLabel matches the server's capitalized sender names.
func senderLabel(s model.Sender) string {
	str := s.String()
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}
