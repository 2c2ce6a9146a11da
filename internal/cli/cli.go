// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for parley.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdAsk
	CmdChat
	CmdExport
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	Server  string // Override server URL
	Theme   string // Override theme for this run

	// Command-specific
	Query          string // Message text for ask
	ConversationID string // Conversation to open, send to, or export
	Subcommand     string
	ConfigKey      string
	ConfigVal      string

	// Raw args remaining after global flag parsing
	Raw []string
}

const usageText = `parley - terminal client for your chat server

Parley talks to a conversation server over HTTP: it creates
conversations, sends messages, keeps the sidebar in sync, and can
share or export any conversation.

Usage:
  parley                          Start the TUI (new chat)
  parley /conversation/ID         Start the TUI on a conversation
  parley ask "question"           Send one message and print the reply
  parley chat                     Line-based interactive chat
  parley export ID                Export a conversation to a file
  parley config [show|set|path]   Configuration
  parley version                  Show version

Ask:
  parley ask "What is Go?"             New conversation, print reply
  parley ask -c 12 "And generics?"     Continue conversation 12
    -c, --conversation ID              Send into an existing conversation

Chat commands (inside the REPL):
  /new              Start a new conversation
  /list             List conversations
  /load ID          Switch to a conversation
  /share            Print a share link
  /export [format]  Export the current conversation
  /quit             Exit

Export:
  parley export 12                     Export conversation 12
    --id N                             Conversation ID (alias for positional)
    --format txt|json|md               Export format (default from config)
    --output DIR                       Output directory (default from config)

Config:
  parley config show                   Show current configuration
  parley config set ui.theme light     Set a value
  parley config path                   Print the config file location

Global Flags:
  --server URL    Override the server URL
  --theme NAME    Use a theme for this run (dark, light)
  -q, --quiet     Minimal output
  -v, --verbose   Debug output

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("parley version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	rest := remaining[1:]
	parsedArgs.Raw = rest

	switch cmd {
	case "tui":
		if len(rest) > 0 {
			parsedArgs.ConversationID = rest[0]
		}
		return CmdTUI, parsedArgs

	case "ask":
		parseAskArgs(&parsedArgs, rest)
		return CmdAsk, parsedArgs

	case "chat":
		return CmdChat, parsedArgs

	case "export":
		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") {
			parsedArgs.ConversationID = rest[0]
		} else if id := NewArgParser(rest).Flag("id"); id != "" {
			// --id N is accepted as an alias for the positional form.
			parsedArgs.ConversationID = id
		}
		return CmdExport, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, rest)
		return CmdConfig, parsedArgs

	case "version", "-v", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// A path or bare conversation ID opens the TUI on it.
		parsedArgs.ConversationID = remaining[0]
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		case "--theme":
			if i+1 < len(args) {
				i++
				parsedArgs.Theme = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--server="):
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			case strings.HasPrefix(arg, "--theme="):
				parsedArgs.Theme = strings.TrimPrefix(arg, "--theme=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseAskArgs parses ask command specific arguments.
func parseAskArgs(args *Args, remaining []string) {
	var query []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "-c", "--conversation":
			if i+1 < len(remaining) {
				i++
				args.ConversationID = remaining[i]
			}
		default:
			if strings.HasPrefix(arg, "--conversation=") {
				args.ConversationID = strings.TrimPrefix(arg, "--conversation=")
			} else if !strings.HasPrefix(arg, "-") {
				query = append(query, arg)
			}
		}
		i++
	}

	args.Query = strings.Join(query, " ")
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) > 0 {
		args.Subcommand = remaining[0]
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}
