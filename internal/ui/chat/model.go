// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/config"
	"github.com/parley-chat/parley-tui/internal/logging"
	"github.com/parley-chat/parley-tui/internal/model"
	"github.com/parley-chat/parley-tui/internal/session"
	"github.com/parley-chat/parley-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady   State = iota // Ready for input
	StateSending              // A send is outstanding
	StateLoading              // A conversation fetch is outstanding
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Session
	controller   *session.Controller
	client       *api.Client
	cfg          *config.Config
	conversation *model.Conversation

	// Sidebar; replaced wholesale on every history fetch
	sidebar       []model.Summary
	sidebarCursor int

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	// Key bindings
	keyMap KeyMap

	// Overlays
	showHelp  bool
	showShare bool
	shareURL  string
	lastError string

	// Status
	statusMsg string

	// Initial location, consumed by Init
	initialID string
}

// New creates the chat model. initialPath is the location the program was
// asked to open: "/" for a new chat, "/conversation/{id}" to resume one.
func New(cfg *config.Config, client *api.Client, initialPath string) Model {
	theme := styles.New(cfg.UI.Theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 4096
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = theme.Spinner

	id, ok := session.ParsePath(initialPath)
	if !ok {
		logging.Warnf("unrecognized path %q, starting a new chat", initialPath)
		id = ""
	}

	return Model{
		state:        StateReady,
		theme:        theme,
		controller:   session.NewController(client),
		client:       client,
		cfg:          cfg,
		conversation: model.NewConversation(),
		viewport:     vp,
		input:        ti,
		spinner:      sp,
		renderer:     newRenderer(theme, 78),
		keyMap:       DefaultKeyMap(),
		initialID:    id,
	}
}

// Controller exposes the session controller so callers can wire the
// conversation-created hook to program.Send.
func (m *Model) Controller() *session.Controller {
	return m.controller
}

// Path returns the location matching the current session state, shown in
// the header and usable to resume this conversation later.
func (m *Model) Path() string {
	return m.controller.Path()
}

func newRenderer(theme *styles.Theme, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		logging.Warnf("markdown renderer unavailable: %v", err)
		return nil
	}
	return r
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init fetches the sidebar and, when a conversation was requested in the
// initial location, loads it.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.historyCmd()}
	if m.initialID != "" {
		cmds = append(cmds, m.loadCmd(m.initialID))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ConversationCreatedMsg:
		// The conversation exists server-side; the reply is still
		// pending. Refresh the sidebar now so the new entry shows up.
		return m, m.historyCmd()

	case SendResultMsg:
		return m.handleSendResult(msg)

	case HistoryMsg:
		return m.handleHistory(msg)

	case LoadConversationMsg:
		m.state = StateLoading
		return m, m.loadCmd(msg.ID)

	case ConversationLoadedMsg:
		return m.handleLoaded(msg)

	case ShareResultMsg:
		return m.handleShareResult(msg)

	case ExportCompleteMsg:
		return m.handleExportComplete(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case spinner.TickMsg:
		if m.state == StateSending || m.state == StateLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	default:
		var cmds []tea.Cmd
		if m.state == StateReady {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			cmds = append(cmds, inputCmd)
		}
		var vpCmd tea.Cmd
		m.viewport, vpCmd = m.viewport.Update(msg)
		cmds = append(cmds, vpCmd)
		return m, tea.Batch(cmds...)
	}
}

// View renders the chat view.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// MESSAGE HANDLERS
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	const (
		headerHeight    = 2
		inputAreaHeight = 4
		statusBarHeight = 2
	)
	viewportHeight := m.height - headerHeight - inputAreaHeight - statusBarHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	transcriptWidth := m.width - m.sidebarWidth()
	if transcriptWidth < 20 {
		transcriptWidth = 20
	}
	m.viewport.Width = transcriptWidth
	m.viewport.Height = viewportHeight

	inputWidth := m.width - 8
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth

	m.renderer = newRenderer(m.theme, transcriptWidth-4)
	m.updateViewport()

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if keyStr == "ctrl+q" || keyStr == "ctrl+c" {
		return m, tea.Quit
	}

	// Overlays swallow keys until dismissed.
	if m.showHelp {
		switch keyStr {
		case "?", "esc", "q", "enter":
			m.showHelp = false
		}
		return m, nil
	}
	if m.showShare {
		switch keyStr {
		case "esc", "enter", " ":
			m.showShare = false
			m.shareURL = ""
		}
		return m, nil
	}
	if m.lastError != "" {
		switch keyStr {
		case "esc", "enter", " ":
			m.lastError = ""
			m.input.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	switch keyStr {
	case "ctrl+n":
		return m.startNewChat()

	case "tab":
		return m.cycleConversation(1)

	case "shift+tab":
		return m.cycleConversation(-1)

	case "ctrl+s":
		if !m.controller.HasConversation() {
			m.statusMsg = "Nothing to share yet"
			return m, nil
		}
		return m, m.shareCmd()

	case "ctrl+e":
		if !m.controller.HasConversation() {
			m.statusMsg = "Nothing to export yet"
			return m, nil
		}
		m.statusMsg = "Exporting..."
		return m, m.exportCmd()

	case "ctrl+t":
		return m.toggleTheme()

	case "?":
		if m.input.Value() == "" {
			m.showHelp = true
			return m, nil
		}

	case "1", "2", "3", "4":
		// On the empty-state panel the number keys copy a suggestion
		// into the input. Anywhere else they type normally.
		if m.conversation.IsEmpty() && m.state == StateReady && m.input.Value() == "" {
			m.input.SetValue(emptyStateSuggestions[keyStr[0]-'1'])
			m.input.CursorEnd()
			return m, nil
		}

	case "pgup", "ctrl+u":
		m.viewport.HalfViewUp()
		return m, nil

	case "pgdown", "ctrl+d":
		m.viewport.HalfViewDown()
		return m, nil

	case "up":
		m.viewport.LineUp(1)
		return m, nil

	case "down":
		m.viewport.LineDown(1)
		return m, nil

	case "enter":
		return m.submitInput()
	}

	if m.state == StateReady {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitInput runs the send protocol for the typed message. The user's
// bubble is rendered before any network activity; empty input is a no-op
// with no network call.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.state != StateReady {
		m.statusMsg = "Still waiting for the previous message"
		return m, nil
	}

	m.conversation.AddUserMessage(text)
	m.input.Reset()
	m.state = StateSending
	m.statusMsg = ""
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.spinner.Tick, m.sendCmd(text))
}

func (m Model) handleSendResult(msg SendResultMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.input.Focus()

	if msg.Err != nil {
		if errors.Is(msg.Err, session.ErrSendInFlight) {
			m.statusMsg = "Still waiting for the previous message"
			return m, textinput.Blink
		}
		// The user's bubble stays; the failure becomes an inline error
		// bubble beneath it.
		m.conversation.AddErrorMessage(errorText(msg.Err))
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, textinput.Blink
	}

	m.conversation.ID = msg.Result.ConversationID
	m.conversation.AddModelMessage(msg.Result.Reply)
	m.updateViewport()
	m.viewport.GotoBottom()

	// The server may have titled the conversation during this exchange.
	return m, tea.Batch(textinput.Blink, m.historyCmd())
}

func (m Model) handleHistory(msg HistoryMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		logging.Warnf("refresh history: %v", msg.Err)
		return m, nil
	}
	m.sidebar = msg.Entries
	m.conversation.Title = m.controller.Title()
	m.syncSidebarCursor()
	return m, nil
}

func (m Model) handleLoaded(msg ConversationLoadedMsg) (tea.Model, tea.Cmd) {
	m.state = StateReady
	m.input.Focus()

	if msg.Err != nil || msg.Detail == nil {
		// Load failures fall back to the empty new-chat state; the
		// controller already reset itself.
		m.conversation.Reset()
		m.syncSidebarCursor()
		m.updateViewport()
		return m, textinput.Blink
	}

	m.conversation.Replace(msg.Detail.ID, msg.Detail.Title, msg.Detail.Messages)
	m.syncSidebarCursor()
	m.updateViewport()
	m.viewport.GotoBottom()
	return m, textinput.Blink
}

func (m Model) handleShareResult(msg ShareResultMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.lastError = errorText(msg.Err)
		return m, nil
	}
	m.showShare = true
	m.shareURL = msg.URL
	return m, nil
}

func (m Model) handleExportComplete(msg ExportCompleteMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.lastError = "Export failed: " + errorText(msg.Err)
		m.statusMsg = ""
		return m, nil
	}
	m.statusMsg = "Exported to " + msg.Path
	return m, nil
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Config == nil {
		return m, nil
	}
	themeChanged := msg.Config.UI.Theme != m.cfg.UI.Theme
	m.cfg = msg.Config
	if themeChanged {
		m.applyTheme(msg.Config.UI.Theme)
	}
	return m, nil
}

// =============================================================================
// ACTIONS
// =============================================================================

// startNewChat resets to the empty new-chat state. The conversation that
// was on screen stays reachable from the sidebar.
func (m Model) startNewChat() (tea.Model, tea.Cmd) {
	m.controller.Reset()
	m.conversation.Reset()
	m.sidebarCursor = -1
	m.statusMsg = ""
	m.updateViewport()
	m.input.Focus()
	return m, textinput.Blink
}

// cycleConversation moves the sidebar selection and loads the selected
// conversation.
func (m Model) cycleConversation(delta int) (tea.Model, tea.Cmd) {
	if len(m.sidebar) == 0 || m.state != StateReady {
		return m, nil
	}
	m.sidebarCursor += delta
	if m.sidebarCursor >= len(m.sidebar) {
		m.sidebarCursor = 0
	}
	if m.sidebarCursor < 0 {
		m.sidebarCursor = len(m.sidebar) - 1
	}
	m.state = StateLoading
	return m, tea.Batch(m.spinner.Tick, m.loadCmd(m.sidebar[m.sidebarCursor].ID))
}

// toggleTheme flips light/dark, persists the choice, and restyles.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.cfg.ToggleTheme()
	if err := config.Save(m.cfg); err != nil {
		logging.Warnf("persist theme: %v", err)
	}
	m.applyTheme(m.cfg.UI.Theme)
	m.statusMsg = "Theme: " + m.cfg.UI.Theme
	return m, nil
}

func (m *Model) applyTheme(mode string) {
	m.theme = styles.New(mode)
	m.spinner.Style = m.theme.Spinner
	wrap := m.viewport.Width - 4
	if wrap < 20 {
		wrap = 74
	}
	m.renderer = newRenderer(m.theme, wrap)
	m.updateViewport()
}

// syncSidebarCursor points the cursor at the active conversation, -1 when
// none is active or the active one is not listed.
func (m *Model) syncSidebarCursor() {
	m.sidebarCursor = -1
	id := m.controller.ID()
	if id == "" {
		return
	}
	for i, entry := range m.sidebar {
		if entry.ID == id {
			m.sidebarCursor = i
			return
		}
	}
}

func (m *Model) updateViewport() {
	m.viewport.SetContent(m.renderMessages())
}

// errorText extracts the user-facing message from an error, preferring
// the server-reported text for application errors.
func errorText(err error) string {
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Message
	}
	return err.Error()
}
