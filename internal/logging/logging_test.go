// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	SetLevel(LevelWarn)
	defer SetLevel(LevelInfo)

	Debugf("hidden debug")
	Infof("hidden info")
	Warnf("visible warn")
	Errorf("visible error")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("low-level messages should be filtered, got: %q", out)
	}
	if !strings.Contains(out, "[WARN] visible warn") {
		t.Errorf("expected warn line, got: %q", out)
	}
	if !strings.Contains(out, "[ERROR] visible error") {
		t.Errorf("expected error line, got: %q", out)
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	SetVerbose(true)
	defer SetVerbose(false)

	Debugf("debug visible")
	if !strings.Contains(buf.String(), "debug visible") {
		t.Error("verbose mode should emit debug lines")
	}
}
