// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// export.go - Export command handler for the parley CLI.
//
// Handles "parley export ID" which writes a conversation to a file.
// The txt and json renditions are downloaded from the server; markdown
// is rendered locally from the fetched transcript.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/parley-chat/parley-tui/internal/export"
	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/session"
)

// HandleExport handles the "export" command.
func HandleExport(args Args) {
	if err := runExport(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func runExport(args Args) error {
	if args.ConversationID == "" {
		return NewUsageError("export", "a conversation ID is required")
	}
	id, ok := session.ParsePath(args.ConversationID)
	if !ok || id == "" {
		return NewUsageError("export", "unrecognized conversation reference")
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	parser := NewArgParser(args.Raw)
	format := parser.FlagOrDefault("format", cfg.Export.Format)
	outDir := parser.FlagOrDefault("output", cfg.Export.OutputDir)

	client := newAPIClient(cfg)
	ctx := context.Background()

	var path string
	switch format {
	case "md", "markdown":
		detail, err := client.GetConversation(ctx, id)
		if err != nil {
			return err
		}
		conv := model.NewConversation()
		conv.Replace(detail.ID, detail.Title, detail.Messages)
		path, err = export.ExportToFile(conv, format, outDir)
		if err != nil {
			return err
		}
	default:
		path, err = client.DownloadExport(ctx, id, format, outDir)
		if err != nil {
			return err
		}
	}

	if !args.Quiet {
		fmt.Println("Exported to " + path)
	}
	return nil
}
