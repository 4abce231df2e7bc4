// Package settings holds the site-wide settings that live in a JSON file
// rather than the database, plus the change notifier the storefront uses to
// re-fetch them.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store reads and writes the settings file. Writes are atomic: the new
// content is written to a temp file and renamed over the old one.
type Store struct {
	path string
	mu   sync.RWMutex
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the current settings object. A missing file yields an empty
// object rather than an error.
func (s *Store) Get() (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	settings := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}

	return settings, nil
}

// Put replaces the settings file contents.
func (s *Store) Put(settings map[string]json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}

// Notifier fans out settings-change ticks to SSE subscribers. A slow
// subscriber drops ticks instead of blocking the writer.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener goes away.
func (n *Notifier) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}

// Notify wakes every subscriber.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()

	for ch := range n.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
