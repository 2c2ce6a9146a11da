// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// DefaultTitle is the title shown before the server generates one.
const DefaultTitle = "New Chat"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the transcript currently on screen. The server is the
// system of record; this struct is rebuilt in full on every load and never
// persisted by the client.
type Conversation struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Messages  []*Message `json:"messages"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewConversation creates an empty, unsent conversation.
func NewConversation() *Conversation {
	return &Conversation{
		Title:     DefaultTitle,
		Messages:  make([]*Message, 0),
		CreatedAt: time.Now(),
	}
}

// AddMessage appends a message to the transcript. Rendering is append-only
// per message; order is preserved as given.
func (c *Conversation) AddMessage(msg *Message) {
	c.Messages = append(c.Messages, msg)
}

// AddUserMessage creates and appends a user message.
func (c *Conversation) AddUserMessage(content string) *Message {
	msg := NewUserMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddModelMessage creates and appends an assistant message.
func (c *Conversation) AddModelMessage(content string) *Message {
	msg := NewModelMessage(content)
	c.AddMessage(msg)
	return msg
}

// AddErrorMessage creates and appends an inline error bubble.
func (c *Conversation) AddErrorMessage(content string) *Message {
	msg := NewErrorMessage(content)
	c.AddMessage(msg)
	return msg
}

// Replace discards the transcript and installs the given messages. Used on
// load: the old rendering is thrown away, never diffed.
func (c *Conversation) Replace(id, title string, messages []*Message) {
	c.ID = id
	c.Title = title
	c.Messages = messages
	if c.Messages == nil {
		c.Messages = make([]*Message, 0)
	}
}

// Reset returns the conversation to the empty "new chat" state.
func (c *Conversation) Reset() {
	c.ID = ""
	c.Title = DefaultTitle
	c.Messages = c.Messages[:0]
}

// IsEmpty reports whether the transcript has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// SIDEBAR SUMMARY
// =============================================================================

// Summary is one sidebar entry. The sidebar is a derived, non-authoritative
// cache: the full slice is replaced on every history fetch.
type Summary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
