// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/parley-chat/parley-tui/internal/api"
	"github.com/parley-chat/parley-tui/internal/logging"
	"github.com/parley-chat/parley-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyMessage means the message text was empty or whitespace-only.
	// No network call is made.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrSendInFlight means a send is already outstanding. Sends are
	// serialized per session; a second submit is rejected, not queued.
	ErrSendInFlight = errors.New("a send is already in progress")

	// ErrNoConversation means the operation requires an active conversation.
	ErrNoConversation = errors.New("no active conversation")
)

// =============================================================================
// STATE MACHINE
// =============================================================================

// State is the session-level conversation state.
type State int

const (
	// StateNone: new, unsent conversation. Suggestions visible, no
	// share/export surfaces.
	StateNone State = iota

	// StateCreating: transient, only during the first send while the
	// create call is outstanding.
	StateCreating

	// StateActive: a specific, previously created or loaded conversation
	// is on screen.
	StateActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StateCreating:
		return "creating"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// =============================================================================
// BACKEND INTERFACE
// =============================================================================

// Backend is the server surface the controller drives. *api.Client
// implements it; tests substitute a recording fake.
type Backend interface {
	NewConversation(ctx context.Context) (string, error)
	SendMessage(ctx context.Context, conversationID, message string) (string, error)
	GetConversation(ctx context.Context, conversationID string) (*api.ConversationDetail, error)
	ListConversations(ctx context.Context) ([]model.Summary, error)
	ShareConversation(ctx context.Context, conversationID string) (string, error)
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the session state and mediates every server interaction.
type Controller struct {
	mu sync.Mutex

	backend Backend

	state        State
	id           string
	title        string
	sendInFlight bool

	// onCreated fires after a conversation is created during a send,
	// before the send call is issued. The TUI uses it to refresh the
	// sidebar as soon as the new conversation exists.
	onCreated func(id string)
}

// NewController creates a controller in the empty "new chat" state.
func NewController(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		state:   StateNone,
		title:   model.DefaultTitle,
	}
}

// SetOnCreated registers the conversation-created hook. The hook runs
// synchronously on the sending goroutine.
func (c *Controller) SetOnCreated(fn func(id string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onCreated = fn
}

// ID returns the active conversation ID, empty if none.
func (c *Controller) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// Title returns the displayed conversation title.
func (c *Controller) Title() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.title
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasConversation reports whether a conversation is active. Share and
// export surfaces are shown iff this is true.
func (c *Controller) HasConversation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id != ""
}

// =============================================================================
// LOCATION SYNC
// =============================================================================

// Path reports the location corresponding to the session state: "/" with
// no active conversation, "/conversation/{id}" otherwise.
func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.id == "" {
		return "/"
	}
	return "/conversation/" + c.id
}

// ParsePath performs the initial-load parse of a location into a
// conversation ID. Accepts "/", "/conversation/{id}", and a bare ID for
// convenience on the command line.
func ParsePath(p string) (id string, ok bool) {
	p = strings.TrimSpace(p)
	switch {
	case p == "" || p == "/":
		return "", true
	case strings.HasPrefix(p, "/conversation/"):
		id = strings.TrimPrefix(p, "/conversation/")
		if id == "" || strings.Contains(id, "/") {
			return "", false
		}
		return id, true
	case !strings.Contains(p, "/"):
		return p, true
	default:
		return "", false
	}
}

// =============================================================================
// SEND PROTOCOL
// =============================================================================

// SendResult is the outcome of a successful send.
type SendResult struct {
	// ConversationID is the session the message went to.
	ConversationID string

	// Created is true when this send established the conversation.
	Created bool

	// Reply is the assistant's response text.
	Reply string
}

// Send drives the message-send protocol: establish a conversation if none
// is active, then send. The create call, when needed, is awaited and
// completed before the send call is issued; no message is ever sent to an
// unestablished conversation.
//
// Empty or whitespace-only text returns ErrEmptyMessage with zero network
// calls. A second Send while one is outstanding returns ErrSendInFlight.
// Failures are terminal for this call and leave the session recoverable;
// there is no retry.
func (c *Controller) Send(ctx context.Context, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.sendInFlight {
		c.mu.Unlock()
		return nil, ErrSendInFlight
	}
	c.sendInFlight = true
	id := c.id
	if id == "" {
		c.state = StateCreating
	}
	onCreated := c.onCreated
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.sendInFlight = false
		c.mu.Unlock()
	}()

	created := false
	if id == "" {
		newID, err := c.backend.NewConversation(ctx)
		if err != nil {
			c.mu.Lock()
			c.state = StateNone
			c.mu.Unlock()
			return nil, fmt.Errorf("create conversation: %w", err)
		}

		c.mu.Lock()
		c.id = newID
		c.state = StateActive
		c.mu.Unlock()

		id = newID
		created = true
		if onCreated != nil {
			onCreated(newID)
		}
	}

	reply, err := c.backend.SendMessage(ctx, id, text)
	if err != nil {
		// The conversation exists server-side; the user may resend.
		return nil, fmt.Errorf("send message: %w", err)
	}

	return &SendResult{ConversationID: id, Created: created, Reply: reply}, nil
}

// =============================================================================
// LOAD / RESET
// =============================================================================

// Load fetches a conversation and adopts it as the active session. An
// empty id resets to the "new chat" state and returns (nil, nil).
//
// On any fetch failure the session falls back to the same observable
// state as Load(""): the error is returned for logging only, never shown
// inline.
func (c *Controller) Load(ctx context.Context, id string) (*api.ConversationDetail, error) {
	if id == "" {
		c.Reset()
		return nil, nil
	}

	detail, err := c.backend.GetConversation(ctx, id)
	if err != nil {
		logging.Warnf("load conversation %s: %v", id, err)
		c.Reset()
		return nil, err
	}

	c.mu.Lock()
	c.id = id
	c.title = detail.Title
	c.state = StateActive
	c.mu.Unlock()

	return detail, nil
}

// Reset returns the session to the empty "new chat" state. Idempotent.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.id = ""
	c.title = model.DefaultTitle
	c.state = StateNone
}

// =============================================================================
// HISTORY
// =============================================================================

// History fetches the sidebar list. The caller replaces its rendering
// wholesale. If an entry matches the active conversation its title is
// adopted, which is how a server-generated title becomes visible after a
// send.
func (c *Controller) History(ctx context.Context) ([]model.Summary, error) {
	summaries, err := c.backend.ListConversations(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for _, s := range summaries {
		if c.id != "" && s.ID == c.id {
			c.title = s.Title
			break
		}
	}
	c.mu.Unlock()

	return summaries, nil
}

// =============================================================================
// SHARE
// =============================================================================

// Share requests a shareable link for the active conversation. Without an
// active conversation it returns ErrNoConversation and makes no call.
func (c *Controller) Share(ctx context.Context) (string, error) {
	c.mu.Lock()
	id := c.id
	c.mu.Unlock()

	if id == "" {
		return "", ErrNoConversation
	}
	return c.backend.ShareConversation(ctx, id)
}
