package api

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/amterp/sprintboard/internal/board"
	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/seed"
	"github.com/amterp/sprintboard/internal/store"
)

// SeedChangeType indicates what happened to the seed file.
type SeedChangeType string

const (
	SeedChangeWritten SeedChangeType = "written"
	SeedChangeRemoved SeedChangeType = "removed"
	SeedChangeIgnored SeedChangeType = "ignored"
)

// SeedChange represents a change to the watched seed file.
type SeedChange struct {
	Type SeedChangeType `json:"type"`
	Path string         `json:"path"`
}

// SeedWatcherSubscriber receives seed file change notifications.
type SeedWatcherSubscriber interface {
	OnSeedChange(change SeedChange)
}

// SeedWatcher watches one seed file and notifies subscribers when it changes.
// The watch is placed on the file's directory so rename-on-save keeps working.
type SeedWatcher struct {
	watcher     *fsnotify.Watcher
	path        string
	dir         string
	mu          sync.RWMutex
	subscribers []SeedWatcherSubscriber
	debounce    *time.Timer
	debounceMu  sync.Mutex
	stopCh      chan struct{}
	stopped     bool // Once stopped, cannot restart
	running     bool
	log         *logrus.Entry
}

// NewSeedWatcher creates a watcher for the given seed file.
func NewSeedWatcher(path string) (*SeedWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve seed path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &SeedWatcher{
		watcher: watcher,
		path:    abs,
		dir:     filepath.Dir(abs),
		stopCh:  make(chan struct{}),
		log:     logrus.WithFields(logrus.Fields{"component": "seed_watcher", "path": abs}),
	}, nil
}

// Subscribe adds a subscriber to receive seed change notifications.
func (sw *SeedWatcher) Subscribe(sub SeedWatcherSubscriber) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.subscribers = append(sw.subscribers, sub)
}

// Start begins watching the seed file.
func (sw *SeedWatcher) Start() error {
	sw.mu.Lock()
	if sw.running {
		sw.mu.Unlock()
		return nil
	}
	if sw.stopped {
		sw.mu.Unlock()
		return fmt.Errorf("seed watcher cannot be restarted after stop")
	}
	sw.running = true
	sw.mu.Unlock()

	if err := sw.watcher.Add(sw.dir); err != nil {
		return fmt.Errorf("watch %s: %w", sw.dir, err)
	}

	go sw.run()
	return nil
}

// Stop stops watching for changes.
func (sw *SeedWatcher) Stop() error {
	sw.mu.Lock()
	if !sw.running || sw.stopped {
		sw.mu.Unlock()
		return nil
	}
	sw.running = false
	sw.stopped = true
	sw.mu.Unlock()

	// Cancel a pending debounce so it can't fire after stop
	sw.debounceMu.Lock()
	if sw.debounce != nil {
		sw.debounce.Stop()
		sw.debounce = nil
	}
	sw.debounceMu.Unlock()

	close(sw.stopCh)
	return sw.watcher.Close()
}

func (sw *SeedWatcher) run() {
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			sw.handleEvent(event)

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.log.WithError(err).Warn("Seed watcher error")

		case <-sw.stopCh:
			return
		}
	}
}

func (sw *SeedWatcher) handleEvent(event fsnotify.Event) {
	change := sw.classifyChange(event)
	if change.Type == SeedChangeIgnored {
		return
	}

	// Debounce: wait 100ms before emitting to coalesce rapid saves
	sw.debounceMu.Lock()
	if sw.debounce != nil {
		sw.debounce.Stop()
	}
	sw.debounce = time.AfterFunc(100*time.Millisecond, func() {
		sw.emitChange(change)
	})
	sw.debounceMu.Unlock()
}

func (sw *SeedWatcher) emitChange(change SeedChange) {
	// Check if watcher was stopped (debounce timer may fire after Stop)
	sw.mu.RLock()
	if sw.stopped {
		sw.mu.RUnlock()
		return
	}
	subs := make([]SeedWatcherSubscriber, len(sw.subscribers))
	copy(subs, sw.subscribers)
	sw.mu.RUnlock()

	for _, sub := range subs {
		sub.OnSeedChange(change)
	}
}

func (sw *SeedWatcher) classifyChange(event fsnotify.Event) SeedChange {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != sw.path {
		return SeedChange{Type: SeedChangeIgnored}
	}

	base := filepath.Base(name)
	if strings.HasSuffix(base, "~") {
		return SeedChange{Type: SeedChangeIgnored}
	}

	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		return SeedChange{Type: SeedChangeWritten, Path: name}
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		return SeedChange{Type: SeedChangeRemoved, Path: name}
	default:
		return SeedChange{Type: SeedChangeIgnored}
	}
}

// SeedReloader resets the session board whenever the seed file is rewritten.
// A seed that fails to load is logged and the current board is kept.
type SeedReloader struct {
	boards *store.BoardStore
	ids    id.Generator
	log    *logrus.Entry
}

// NewSeedReloader creates a reloader that dispatches Reset to boards.
func NewSeedReloader(boards *store.BoardStore, ids id.Generator) *SeedReloader {
	return &SeedReloader{
		boards: boards,
		ids:    ids,
		log:    logrus.WithField("component", "seed_reloader"),
	}
}

// OnSeedChange implements SeedWatcherSubscriber.
func (r *SeedReloader) OnSeedChange(change SeedChange) {
	log := r.log.WithField("path", change.Path)

	if change.Type != SeedChangeWritten {
		log.Info("Seed file removed, keeping current board")
		return
	}

	b, err := seed.LoadFile(change.Path, r.ids)
	if err != nil {
		log.WithError(err).Warn("Ignoring invalid seed file")
		return
	}
	if _, err := r.boards.Dispatch(board.Reset{Board: b}); err != nil {
		log.WithError(err).Warn("Failed to reset board from seed")
		return
	}
	log.WithField("cards", b.CardCount()).Info("Board reset from seed file")
}
