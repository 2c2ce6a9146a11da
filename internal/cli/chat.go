// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the parley CLI.
//
// Handles "parley chat", a line-based REPL against the chat server for
// terminals where the full TUI is unwanted (ssh sessions, scripts run
// with a pty, minimal environments).
//
// Interactive commands (during chat):
//
//	/help, /h           Show available commands
//	/new                Start a new conversation
//	/list               List conversations
//	/load ID            Switch to a conversation
//	/share              Print a share link for this conversation
//	/export [format]    Export this conversation to a file
//	/quit, /q           Exit chat
//	Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/export"
	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/session"
	"github.com/parley-chat/parley-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Indigo).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	warningStyle = lipgloss.NewStyle().
			Foreground(styles.Amber)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a new ChatCLI with input history support.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	cli := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	cli.LoadHistory()
	return cli
}

// LoadHistory loads command history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt. Supports
// history navigation with arrow keys.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists command history with owner-only permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// CHAT SESSION
// =============================================================================

// chatSession holds the state for an interactive REPL session.
type chatSession struct {
	cfg    *config.Config
	client *api.Client
	ctrl   *session.Controller
	input  *ChatCLI
	quiet  bool
}

// HandleChat handles the "chat" command.
func HandleChat(args Args) {
	if err := runChat(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func runChat(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	client := newAPIClient(cfg)

	s := &chatSession{
		cfg:    cfg,
		client: client,
		ctrl:   session.NewController(client),
		input:  NewChatCLI(),
		quiet:  args.Quiet,
	}
	defer s.input.Close()

	if args.ConversationID != "" {
		if id, ok := session.ParsePath(args.ConversationID); ok && id != "" {
			if _, err := s.ctrl.Load(context.Background(), id); err != nil {
				fmt.Println(warningStyle.Render("Could not load conversation, starting fresh."))
			}
		}
	}

	if !s.quiet {
		fmt.Println(welcomeStyle.Render("parley chat"))
		fmt.Println(infoStyle.Render("Server: " + cfg.Server.URL))
		fmt.Println(infoStyle.Render("Type /help for commands, Ctrl+D to exit."))
		fmt.Println()
	}

	return s.loop()
}

func (s *chatSession) loop() error {
	for {
		input, err := s.input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if err == io.EOF || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			done, err := s.handleCommand(input)
			if err != nil {
				fmt.Println(warningStyle.Render(err.Error()))
			}
			if done {
				return nil
			}
			continue
		}

		s.sendMessage(input)
	}
}

// sendMessage runs the send protocol and prints the reply. Failures are
// shown inline; the session stays usable.
func (s *chatSession) sendMessage(text string) {
	result, err := s.ctrl.Send(context.Background(), text)
	if err != nil {
		var clientErr *api.ClientError
		if errors.As(err, &clientErr) {
			fmt.Println(warningStyle.Render("Error: " + clientErr.Message))
		} else {
			fmt.Println(warningStyle.Render("Error: " + err.Error()))
		}
		return
	}

	fmt.Println(renderReply(result.Reply, s.cfg.UI.Theme))
	fmt.Println()

	if result.Created && !s.quiet {
		fmt.Println(infoStyle.Render("Conversation " + result.ConversationID + " created."))
	}
}

// handleCommand processes a /command. Returns true when the REPL should
// exit.
func (s *chatSession) handleCommand(input string) (bool, error) {
	fields := strings.Fields(input)
	cmd := fields[0]

	switch cmd {
	case "/quit", "/q", "/exit":
		return true, nil

	case "/help", "/h":
		fmt.Println(infoStyle.Render(`Commands:
  /new              Start a new conversation
  /list             List conversations
  /load ID          Switch to a conversation
  /share            Print a share link
  /export [format]  Export this conversation
  /quit             Exit`))
		return false, nil

	case "/new":
		s.ctrl.Reset()
		fmt.Println(infoStyle.Render("Started a new chat."))
		return false, nil

	case "/list":
		entries, err := s.ctrl.History(context.Background())
		if err != nil {
			return false, err
		}
		if len(entries) == 0 {
			fmt.Println(infoStyle.Render("No conversations yet."))
			return false, nil
		}
		active := s.ctrl.ID()
		for _, e := range entries {
			marker := "  "
			if e.ID == active {
				marker = "* "
			}
			fmt.Printf("%s%-6s %s\n", marker, e.ID, e.Title)
		}
		return false, nil

	case "/load":
		if len(fields) < 2 {
			return false, NewUsageError("/load", "a conversation ID is required")
		}
		detail, err := s.ctrl.Load(context.Background(), fields[1])
		if err != nil {
			return false, err
		}
		fmt.Println(infoStyle.Render("Switched to: " + detail.Title))
		s.printTranscript(detail.Messages)
		return false, nil

	case "/share":
		url, err := s.ctrl.Share(context.Background())
		if err != nil {
			return false, err
		}
		fmt.Println(infoStyle.Render("Share link: " + url))
		return false, nil

	case "/export":
		format := s.cfg.Export.Format
		if len(fields) > 1 {
			format = fields[1]
		}
		path, err := s.exportConversation(format)
		if err != nil {
			return false, err
		}
		fmt.Println(infoStyle.Render("Exported to " + path))
		return false, nil

	default:
		return false, NewUsageError(cmd, "unknown command")
	}
}

// exportConversation writes the active conversation to disk in the
// given format. Markdown is rendered locally; txt and json come from
// the server.
func (s *chatSession) exportConversation(format string) (string, error) {
	id := s.ctrl.ID()
	if id == "" {
		return "", session.ErrNoConversation
	}

	switch format {
	case "md", "markdown":
		// Fetch directly rather than through the session so a failed
		// export leaves the active conversation in place.
		detail, err := s.client.GetConversation(context.Background(), id)
		if err != nil {
			return "", err
		}
		conv := model.NewConversation()
		conv.Replace(detail.ID, detail.Title, detail.Messages)
		return export.ExportToFile(conv, format, s.cfg.Export.OutputDir)
	default:
		return s.client.DownloadExport(context.Background(), id, format, s.cfg.Export.OutputDir)
	}
}

func (s *chatSession) printTranscript(messages []*model.Message) {
	for _, msg := range messages {
		label := msg.Sender.DisplayName()
		if msg.Sender == model.SenderModel {
			fmt.Println(promptStyle.Render(label+":") + "\n" + renderReply(msg.Content, s.cfg.UI.Theme))
		} else {
			fmt.Println(promptStyle.Render(label+":") + " " + msg.Content)
		}
	}
	fmt.Println()
}
