// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cache remembers the version each Python interpreter reports, so an
// interpreter is run with --version once per build rather than on every lookup.
//
// Entries live as JSON files in a directory and record the size and
// modification time of the interpreter they describe. Replacing or rebuilding
// the interpreter makes its entry stale.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/jongio/pyenv-activate/fileutil"
)

// Options configures a Store.
type Options struct {
	Dir     string        // directory holding the entries
	TTL     time.Duration // entries older than this are ignored; zero keeps them forever
	Version string        // pyenv-activate version; entries written by another version are ignored
}

// Stats counts how lookups were served.
type Stats struct {
	Hits   int
	Misses int
	Errors int
}

// entry is the on-disk record of one interpreter.
type entry struct {
	Python   string    `json:"python"`
	Version  string    `json:"version"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"modTime"`
	CachedAt time.Time `json:"cachedAt"`
	Writer   string    `json:"writer,omitempty"`
}

var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// maxNameLength bounds the readable part of an entry file name.
const maxNameLength = 48

// Store is a directory of interpreter versions. It is safe for concurrent use.
type Store struct {
	dir    string
	ttl    time.Duration
	writer string

	mu      sync.RWMutex
	statsMu sync.Mutex
	stats   Stats
}

// New creates a Store. The directory is created on the first write.
func New(opts Options) *Store {
	return &Store{
		dir:    opts.Dir,
		ttl:    opts.TTL,
		writer: opts.Version,
	}
}

// Lookup returns the cached version of the interpreter at python.
// ok is false when there is no entry or the entry is stale.
func (s *Store) Lookup(python string) (version string, ok bool, err error) {
	info, err := os.Stat(python)
	if err != nil {
		s.count(func(st *Stats) { st.Errors++ })
		return "", false, fmt.Errorf("failed to stat %s: %w", python, err)
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(python))
	s.mu.RUnlock()
	if errors.Is(err, os.ErrNotExist) {
		s.count(func(st *Stats) { st.Misses++ })
		return "", false, nil
	}
	if err != nil {
		s.count(func(st *Stats) { st.Errors++ })
		return "", false, fmt.Errorf("failed to read cached version of %s: %w", python, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		s.count(func(st *Stats) { st.Errors++ })
		return "", false, fmt.Errorf("failed to parse cached version of %s: %w", python, err)
	}

	if !s.fresh(e, python, info) {
		s.count(func(st *Stats) { st.Misses++ })
		return "", false, nil
	}
	s.count(func(st *Stats) { st.Hits++ })
	return e.Version, true, nil
}

// fresh reports whether e still describes the interpreter file behind info.
func (s *Store) fresh(e entry, python string, info os.FileInfo) bool {
	switch {
	case e.Python != python || e.Version == "":
		return false
	case e.Size != info.Size() || !e.ModTime.Equal(info.ModTime()):
		return false
	case s.ttl > 0 && time.Since(e.CachedAt) > s.ttl:
		return false
	case s.writer != "" && e.Writer != s.writer:
		return false
	}
	return true
}

// Record records the version reported by the interpreter at python.
func (s *Store) Record(python, version string) error {
	info, err := os.Stat(python)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", python, err)
	}

	e := entry{
		Python:   python,
		Version:  version,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		CachedAt: time.Now(),
		Writer:   s.writer,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fileutil.EnsureDir(s.dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return fileutil.AtomicWriteJSON(s.path(python), e)
}

// Forget removes the entry of the interpreter at python. The interpreter
// itself need not exist any more.
func (s *Store) Forget(python string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(python)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove cached version of %s: %w", python, err)
	}
	return nil
}

// Clear removes every entry. Other files in the directory are left alone.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, de := range entries {
		if de.IsDir() || filepath.Ext(de.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, de.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", de.Name(), err)
		}
	}
	return nil
}

// Stats returns the lookup counters.
func (s *Store) Stats() Stats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}

func (s *Store) count(update func(*Stats)) {
	s.statsMu.Lock()
	update(&s.stats)
	s.statsMu.Unlock()
}

// path returns the entry file of python: its sanitized base name, for
// readability, plus a digest of the full path, since distinct paths share
// base names.
func (s *Store) path(python string) string {
	sum := sha256.Sum256([]byte(python))
	name := fileNameSanitizer.ReplaceAllString(filepath.Base(python), "_")
	if len(name) > maxNameLength {
		name = name[:maxNameLength]
	}
	return filepath.Join(s.dir, name+"-"+hex.EncodeToString(sum[:8])+".json")
}
