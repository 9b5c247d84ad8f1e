// Package runlog keeps the append-only run log: one numbered,
// timestamped line per run.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	"github.com/phuslu/log"
)

var entryRegex = regexp.MustCompile(`(?m)^\d+\.`)

// Entry is one line of the run log.
type Entry struct {
	Ordinal   int
	Timestamp string
}

func (e Entry) String() string {
	return fmt.Sprintf("%d. %s\n", e.Ordinal, e.Timestamp)
}

// Store owns the entry counter for a single log file.
type Store struct {
	path   string
	count  int
	lock   *flock.Flock
	format Formatter
}

type Option func(*Store)

// WithFormatter overrides the default en-IN, local time formatter.
func WithFormatter(f Formatter) Option {
	return func(s *Store) { s.format = f }
}

// Open recovers the entry count from path. A missing or unreadable file
// counts as zero entries and is reinitialized empty; only a failure to
// create that empty file is returned.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{
		path:   path,
		lock:   flock.New(path + ".lock"),
		format: NewFormatter("en-IN", time.Local),
	}
	for _, opt := range opts {
		opt(s)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}

	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	defer s.lock.Unlock()

	count, err := countEntries(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("⚠️ Run log unreadable, starting fresh")
		}
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", path, err)
		}
		count = 0
	}
	s.count = count

	log.Debug().Str("path", path).Int("entries", count).Msg("📋 Run log loaded")
	return s, nil
}

// Count returns the number of entries written so far, including this run's.
func (s *Store) Count() int {
	return s.count
}

func (s *Store) Path() string {
	return s.path
}

// AddEntry appends the next numbered entry stamped with now.
func (s *Store) AddEntry(now time.Time) (Entry, error) {
	if err := s.lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("lock %s: %w", s.path, err)
	}
	defer s.lock.Unlock()

	// another run may have appended since Open
	if n, err := countEntries(s.path); err == nil && n > s.count {
		s.count = n
	}

	entry := Entry{Ordinal: s.count + 1, Timestamp: s.format.Format(now)}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Entry{}, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry.String()); err != nil {
		return Entry{}, fmt.Errorf("append to %s: %w", s.path, err)
	}
	s.count = entry.Ordinal

	log.Info().Int("ordinal", entry.Ordinal).Msgf("✅ Log: %d. %s", entry.Ordinal, entry.Timestamp)
	return entry, nil
}

func countEntries(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return len(entryRegex.FindAll(data, -1)), nil
}
