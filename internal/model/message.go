// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message. The wire protocol only carries
// "user" and "model"; "system" is a client-side sender for inline notices
// and send-failure bubbles that never round-trip to the server.
type Sender string

const (
	SenderUser   Sender = "user"
	SenderModel  Sender = "model"
	SenderSystem Sender = "system"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderModel:
		return "Assistant"
	case SenderSystem:
		return "System"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation transcript.
type Message struct {
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`

	// IsError marks a system message that replaced a failed reply.
	IsError bool `json:"-"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, content string) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a message from the user.
func NewUserMessage(content string) *Message {
	return NewMessage(SenderUser, content)
}

// NewModelMessage creates a message from the assistant.
func NewModelMessage(content string) *Message {
	return NewMessage(SenderModel, content)
}

// NewErrorMessage creates an error bubble shown in place of a reply.
func NewErrorMessage(content string) *Message {
	msg := NewMessage(SenderSystem, content)
	msg.IsError = true
	return msg
}
