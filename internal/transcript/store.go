// Package transcript provides bounded in-memory transcript storage
package transcript

import (
	"strings"
	"sync"
	"time"
)

// Entry is one recognized utterance with its in-segment timestamps.
type Entry struct {
	Timestamp time.Time // wall-clock arrival time
	Start     float64   // seconds from segment start
	End       float64
	Text      string
}

// Store is an append-only transcript log, trimmed to a maximum size. The
// transcription worker writes; the presentation layer reads.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	maxSize int
}

// NewStore creates a store keeping at most maxEntries entries.
func NewStore(maxEntries int) *Store {
	return &Store{
		entries: make([]Entry, 0, maxEntries),
		maxSize: maxEntries,
	}
}

// Add appends one utterance, evicting the oldest entries past the bound.
func (s *Store) Add(start, end float64, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, Entry{
		Timestamp: time.Now(),
		Start:     start,
		End:       end,
		Text:      text,
	})
	if len(s.entries) > s.maxSize {
		s.entries = s.entries[len(s.entries)-s.maxSize:]
	}
}

// Recent returns the text of entries from the last N seconds, one per line.
func (s *Store) Recent(seconds int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := time.Now().Add(-time.Duration(seconds) * time.Second)
	var parts []string
	for _, e := range s.entries {
		if !e.Timestamp.Before(cutoff) {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// Entries returns a copy of all stored entries.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
