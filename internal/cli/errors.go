// errors.go - Unified error handling for parley CLI commands.
//
// Commands always return errors; the dispatcher in main decides how to
// display them and maps them to exit codes here.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"

	"github.com/parley-chat/parley-tui/internal/api"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitNetworkError indicates the server could not be reached
	ExitNetworkError = 5
	// ExitTimeoutError indicates an operation timed out
	ExitTimeoutError = 8
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError represents invalid command usage. The message is shown to
// the user along with a pointer to help.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s (see 'parley help')", e.Command, e.Reason)
	}
	return fmt.Sprintf("%s (see 'parley help')", e.Reason)
}

// NewUsageError creates a usage error for a command.
func NewUsageError(command, reason string) error {
	return &UsageError{Command: command, Reason: reason}
}

// ConfigError wraps a configuration load, save, or validation failure.
type ConfigError struct {
	Op  string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode maps an error to a process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}

	if api.IsTimeout(err) {
		return ExitTimeoutError
	}
	var clientErr *api.ClientError
	if errors.As(err, &clientErr) && clientErr.Type == api.ErrTypeConnection {
		return ExitNetworkError
	}

	return ExitGeneralError
}
