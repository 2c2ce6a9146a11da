// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestTruncateWidth(t *testing.T) {
	// CJK characters occupy two columns each.
	got := TruncateWidth("日本語テキスト", 8)
	if runewidth.StringWidth(got) > 8 {
		t.Errorf("TruncateWidth result too wide: %q (%d columns)", got, runewidth.StringWidth(got))
	}

	if got := TruncateWidth("short", 20); got != "short" {
		t.Errorf("expected unchanged string, got %q", got)
	}
}

func TestCollapseLine(t *testing.T) {
	got := CollapseLine("  first\nsecond\r\nthird  ")
	want := "first second third"
	if got != want {
		t.Errorf("CollapseLine = %q, want %q", got, want)
	}
}

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("expected %q, got %q", "content", string(data))
	}

	// Overwrite must replace, not append.
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("expected %q after overwrite, got %q", "new", string(data))
	}
}
