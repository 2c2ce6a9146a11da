// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"

	"github.com/parley-chat/parley-tui/internal/model"
)

// =============================================================================
// WIRE TYPES
// =============================================================================

// envelope carries the backend's error channel. The server may return a 2xx
// status with an error field in the body; presence of the field is failure
// regardless of HTTP status.
type envelope struct {
	Error string `json:"error"`
}

func (e envelope) apiError() string { return e.Error }

// responder is implemented by every enveloped response type.
type responder interface {
	apiError() string
}

// newConversationResponse is the body of POST /new_conversation.
// Conversation IDs are numeric on the wire; the client treats them as
// opaque strings.
type newConversationResponse struct {
	envelope
	ConversationID json.Number `json:"conversation_id"`
}

// sendResponse is the body of POST /conversations/{id}/send.
type sendResponse struct {
	envelope
	Response string `json:"response"`
}

// wireMessage is one transcript entry as the server renders it.
type wireMessage struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

// conversationResponse is the body of GET /conversations/{id}.
type conversationResponse struct {
	envelope
	Title    string        `json:"title"`
	Messages []wireMessage `json:"messages"`
}

// listEntry is one element of GET /conversations. The list endpoint returns
// a bare array, not an enveloped object.
type listEntry struct {
	ID    json.Number `json:"id"`
	Title string      `json:"title"`
}

// shareResponse is the body of POST /conversations/{id}/share.
type shareResponse struct {
	envelope
	ShareURL string `json:"share_url"`
}

// sendRequest is the body of POST /conversations/{id}/send.
type sendRequest struct {
	Message string `json:"message"`
}

// =============================================================================
// PUBLIC RESULT TYPES
// =============================================================================

// ConversationDetail is a fully loaded conversation.
type ConversationDetail struct {
	ID       string
	Title    string
	Messages []*model.Message
}

// toMessages converts wire messages into transcript messages, preserving
// server order.
func toMessages(wire []wireMessage) []*model.Message {
	msgs := make([]*model.Message, 0, len(wire))
	for _, wm := range wire {
		msgs = append(msgs, model.NewMessage(model.Sender(wm.Sender), wm.Content))
	}
	return msgs
}
