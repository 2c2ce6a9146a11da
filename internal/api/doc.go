// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the parley chat backend.
//
// The backend reports application failures as a 2xx JSON body carrying an
// "error" field. This package decodes that envelope exactly once, at the
// network boundary: callers receive either the payload or a typed error,
// and never re-inspect responses for the field.
package api
