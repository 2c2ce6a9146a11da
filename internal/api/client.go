// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/parley-chat/parley-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeConnection
	ErrTypeTimeout
	ErrTypeDecode
	ErrTypeApplication
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeConnection, Message: "chat server is not reachable"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsApplicationError reports whether err is a well-formed server response
// carrying an error field, as opposed to a transport or decode failure.
func IsApplicationError(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeApplication
	}
	return false
}

// IsTimeout reports whether err is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// maxResponseSize caps response bodies to guard against a misbehaving
// server exhausting memory.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the chat server base URL (default: http://127.0.0.1:5000)
	BaseURL string

	// Timeout for requests (default: 60s; a send waits on inference)
	Timeout time.Duration

	// AuthToken, when set, is sent as a bearer token on every request.
	AuthToken string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "http://127.0.0.1:5000",
		Timeout: 60 * time.Second,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the chat backend.
//
// The Client is safe for concurrent use; it holds no per-conversation
// state. Session state lives in the session package.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:5000"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured server base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// NewConversation creates a conversation on the server and returns its ID.
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	var resp newConversationResponse
	if err := c.do(ctx, http.MethodPost, "/new_conversation", nil, &resp); err != nil {
		return "", err
	}
	if resp.ConversationID == "" {
		return "", &ClientError{Type: ErrTypeDecode, Message: "server returned no conversation id"}
	}
	return resp.ConversationID.String(), nil
}

// SendMessage sends a user message to an existing conversation and returns
// the assistant reply. The conversation must already exist; the send
// protocol ordering is enforced by the session controller.
func (c *Client) SendMessage(ctx context.Context, conversationID, message string) (string, error) {
	var resp sendResponse
	path := "/conversations/" + url.PathEscape(conversationID) + "/send"
	if err := c.do(ctx, http.MethodPost, path, sendRequest{Message: message}, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// GetConversation loads a conversation by ID, title and full transcript.
func (c *Client) GetConversation(ctx context.Context, conversationID string) (*ConversationDetail, error) {
	var resp conversationResponse
	path := "/conversations/" + url.PathEscape(conversationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &ConversationDetail{
		ID:       conversationID,
		Title:    resp.Title,
		Messages: toMessages(resp.Messages),
	}, nil
}

// ListConversations fetches the sidebar list. The caller replaces its
// rendered list wholesale; entries are never patched incrementally.
func (c *Client) ListConversations(ctx context.Context) ([]model.Summary, error) {
	body, err := c.raw(ctx, http.MethodGet, "/conversations", nil)
	if err != nil {
		return nil, err
	}

	// The list endpoint returns a bare array. An enveloped object here
	// still means failure.
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return nil, &ClientError{Type: ErrTypeApplication, Message: env.Error}
	}

	var entries []listEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &ClientError{Type: ErrTypeDecode, Message: "failed to decode conversation list", Cause: err}
	}

	summaries := make([]model.Summary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, model.Summary{ID: e.ID.String(), Title: e.Title})
	}
	return summaries, nil
}

// ShareConversation requests a shareable link for a conversation.
func (c *Client) ShareConversation(ctx context.Context, conversationID string) (string, error) {
	var resp shareResponse
	path := "/conversations/" + url.PathEscape(conversationID) + "/share"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return "", err
	}
	if resp.ShareURL == "" {
		return "", &ClientError{Type: ErrTypeDecode, Message: "server returned no share URL"}
	}
	return resp.ShareURL, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a JSON request and decodes the enveloped response into out,
// surfacing the error field as an application error.
func (c *Client) do(ctx context.Context, method, path string, body any, out responder) error {
	raw, err := c.raw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &ClientError{Type: ErrTypeDecode, Message: "failed to decode response", Cause: err}
	}

	if msg := out.apiError(); msg != "" {
		return &ClientError{Type: ErrTypeApplication, Message: msg}
	}
	return nil
}

// raw performs a request and returns the response body. Non-2xx statuses
// without a decodable error field become connection errors; the error
// field itself is the caller's concern so that 2xx-with-error and
// 4xx-with-error behave identically.
func (c *Client) raw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &ClientError{Type: ErrTypeDecode, Message: "failed to marshal request", Cause: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.config.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, ErrUnreachable
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read response", Cause: err}
	}

	// A JSON body with an error field wins over the status line; otherwise
	// a non-2xx status is a plain transport failure.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != "" {
			return nil, &ClientError{Type: ErrTypeApplication, Message: env.Error}
		}
		return nil, &ClientError{
			Type:    ErrTypeConnection,
			Message: fmt.Sprintf("unexpected status from server: %s", resp.Status),
		}
	}

	return raw, nil
}
