// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// EXPORT DOWNLOAD
// =============================================================================

// DownloadExport fetches a server-rendered export of a conversation and
// writes it to outDir. In the browser client this is a plain navigation;
// here the attachment is streamed to disk. Returns the written file path.
func (c *Client) DownloadExport(ctx context.Context, conversationID, format, outDir string) (string, error) {
	path := "/conversations/" + url.PathEscape(conversationID) + "/export?format=" + url.QueryEscape(format)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return "", &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", ErrTimeout
		}
		return "", ErrUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &ClientError{
			Type:    ErrTypeConnection,
			Message: fmt.Sprintf("export failed: %s", resp.Status),
		}
	}

	filename := attachmentFilename(resp.Header.Get("Content-Disposition"))
	if filename == "" {
		filename = fmt.Sprintf("conversation_%s.%s", conversationID, format)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outPath := filepath.Join(outDir, filename)
	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(resp.Body, maxResponseSize)); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("write export file: %w", err)
	}

	return outPath, nil
}

// attachmentFilename extracts the filename from a Content-Disposition
// header, rejecting anything that could escape the output directory.
func attachmentFilename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	name := filepath.Base(params["filename"])
	if name == "." || name == string(filepath.Separator) || strings.ContainsAny(name, "/\\") {
		return ""
	}
	return name
}
