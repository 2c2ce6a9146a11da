// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/parley-chat/parley-tui/internal/logging"
)

// =============================================================================
// CONFIG WATCHER
// =============================================================================

// Watcher reloads the config file when it changes on disk, so an external
// edit to the theme key takes effect without a restart.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Config)
	debounce time.Duration

	mu      sync.Mutex
	pending *time.Timer
	done    chan struct{}
}

// NewWatcher creates a watcher for the given config path. onReload is
// called with the freshly loaded config after each change; parse or
// validation failures are logged and the previous config stays in effect.
func NewWatcher(path string, onReload func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     path,
		watcher:  fw,
		onReload: onReload,
		debounce: 250 * time.Millisecond,
		done:     make(chan struct{}),
	}
	return w, nil
}

// Watch starts watching. Editors typically replace the file via rename, so
// the parent directory is watched rather than the file itself.
func (w *Watcher) Watch() error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warnf("config watcher: %v", err)
		}
	}
}

// scheduleReload debounces bursts of events from a single save.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := LoadFromPath(w.path)
	if err != nil {
		logging.Warnf("config reload failed, keeping previous config: %v", err)
		return
	}
	logging.Infof("config reloaded from %s", w.path)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
