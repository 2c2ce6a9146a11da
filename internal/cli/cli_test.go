// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"testing"

	"github.com/parley-chat/parley-tui/internal/api"
)

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"42", "--format", "json", "--output=./out", "--quiet"})

	if got := p.Positional(0); got != "42" {
		t.Errorf("Positional(0) = %q, want 42", got)
	}
	if got := p.Flag("format"); got != "json" {
		t.Errorf("Flag(format) = %q, want json", got)
	}
	if got := p.Flag("output"); got != "./out" {
		t.Errorf("Flag(output) = %q, want ./out", got)
	}
	if !p.BoolFlag("quiet") {
		t.Error("BoolFlag(quiet) = false, want true")
	}
	if p.HasFlag("missing") {
		t.Error("HasFlag(missing) = true, want false")
	}
	if got := p.FlagOrDefault("missing", "txt"); got != "txt" {
		t.Errorf("FlagOrDefault = %q, want txt", got)
	}
}

func TestArgParserExplicitBool(t *testing.T) {
	p := NewArgParser([]string{"--quiet=false", "--verbose=true"})
	if p.BoolFlag("quiet") {
		t.Error("explicit --quiet=false parsed as true")
	}
	if !p.BoolFlag("verbose") {
		t.Error("explicit --verbose=true parsed as false")
	}
}

func TestParseGlobalFlags(t *testing.T) {
	remaining, args := parseGlobalFlags([]string{
		"--server", "http://example.com:5000", "--theme=light", "-q", "ask", "hello",
	})

	if args.Server != "http://example.com:5000" {
		t.Errorf("Server = %q", args.Server)
	}
	if args.Theme != "light" {
		t.Errorf("Theme = %q, want light", args.Theme)
	}
	if !args.Quiet {
		t.Error("Quiet not set")
	}
	if len(remaining) != 2 || remaining[0] != "ask" || remaining[1] != "hello" {
		t.Errorf("remaining = %v, want [ask hello]", remaining)
	}
}

func TestParseAskArgs(t *testing.T) {
	tests := []struct {
		name     string
		raw      []string
		wantID   string
		wantText string
	}{
		{"plain", []string{"what", "is", "go"}, "", "what is go"},
		{"with conversation flag", []string{"-c", "12", "and", "generics"}, "12", "and generics"},
		{"equals form", []string{"--conversation=7", "hi"}, "7", "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args Args
			parseAskArgs(&args, tt.raw)
			if args.ConversationID != tt.wantID {
				t.Errorf("ConversationID = %q, want %q", args.ConversationID, tt.wantID)
			}
			if args.Query != tt.wantText {
				t.Errorf("Query = %q, want %q", args.Query, tt.wantText)
			}
		})
	}
}

func TestParseExportArgs(t *testing.T) {
	tests := []struct {
		name   string
		argv   []string
		wantID string
	}{
		{"positional", []string{"export", "12", "--format", "md"}, "12"},
		{"id flag", []string{"export", "--id", "12", "--format", "md"}, "12"},
		{"id equals form", []string{"export", "--id=7"}, "7"},
		{"missing", []string{"export", "--format", "md"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := parseArgs(tt.argv)
			if cmd != CmdExport {
				t.Fatalf("cmd = %v, want CmdExport", cmd)
			}
			if args.ConversationID != tt.wantID {
				t.Errorf("ConversationID = %q, want %q", args.ConversationID, tt.wantID)
			}
		})
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", NewUsageError("ask", "missing message"), ExitUsageError},
		{"config", &ConfigError{Op: "load", Err: errors.New("bad toml")}, ExitConfigError},
		{"connection", &api.ClientError{Type: api.ErrTypeConnection, Message: "refused"}, ExitNetworkError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "(not set)"},
		{"abc", "****"},
		{"secret-token", "se****en"},
	}
	for _, tt := range tests {
		if got := maskToken(tt.in); got != tt.want {
			t.Errorf("maskToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
