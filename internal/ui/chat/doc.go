// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// The view owns the transcript viewport, the sidebar of past
// conversations, the message input, and the overlay surfaces (share
// link, error dialog, help). All server interaction goes through the
// session controller; the view renders whatever state the controller
// reports and never talks to the network directly from Update.
package chat
