// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides a small leveled logger for the parley client.
//
// Load-path and watcher failures are logged rather than surfaced in the
// UI. In TUI mode the output is redirected to a file so log lines cannot
// corrupt the alternate screen.
package logging

import (
	"io"
	"log"
	"os"
	"sync"
)

// Level represents the logging level.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var (
	mu      sync.Mutex
	level   = LevelInfo
	logger  = log.New(os.Stderr, "", log.LstdFlags)
	logFile *os.File
)

// SetLevel sets the global log level.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// SetVerbose enables debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		SetLevel(LevelDebug)
	} else {
		SetLevel(LevelInfo)
	}
}

// SetOutput redirects log output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// RedirectToFile sends log output to the given file path, appending.
// Used in TUI mode where stderr is not usable.
func RedirectToFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger.SetOutput(f)
	return nil
}

// Close releases the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
		logger.SetOutput(os.Stderr)
	}
}

func logf(l Level, prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if level >= l {
		logger.Printf(prefix+format, args...)
	}
}

// Errorf logs at error level.
func Errorf(format string, args ...any) {
	logf(LevelError, "[ERROR] ", format, args...)
}

// Warnf logs at warn level.
func Warnf(format string, args ...any) {
	logf(LevelWarn, "[WARN] ", format, args...)
}

// Infof logs at info level.
func Infof(format string, args ...any) {
	logf(LevelInfo, "[INFO] ", format, args...)
}

// Debugf logs at debug level.
func Debugf(format string, args ...any) {
	logf(LevelDebug, "[DEBUG] ", format, args...)
}
