// Package diary owns the session's entry collection and keeps it in step
// with the local mirror and with exported diary files.
//
// A Store is the only writer of the collection. Views read Entries (or List)
// and send every change through a Store method, which updates memory,
// rewrites the mirror and then notifies subscribers.
package diary

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/store"
)

var (
	// ErrEmptyCollection is returned by SaveToFile when there is nothing to save.
	ErrEmptyCollection = errors.New("diary: no entries to save")
	// ErrStorageUnavailable wraps failures of the local mirror.
	ErrStorageUnavailable = errors.New("diary: local storage unavailable")
)

// Op names the operation behind a change Event.
type Op string

const (
	OpRestore Op = "restore"
	OpLoad    Op = "load"
	OpAdd     Op = "add"
	OpUpdate  Op = "update"
	OpDelete  Op = "delete"
	OpSave    Op = "save"
	OpUnload  Op = "unload"
)

// Event is delivered to subscribers after the state changed.
type Event struct {
	Op Op
}

// Item is an entry together with its current position and stable id.
type Item struct {
	Index int         `json:"index"`
	ID    string      `json:"id"`
	Entry entry.Entry `json:"entry"`
}

type record struct {
	id    string
	entry entry.Entry
}

// Store is the session's entry collection. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	records   []record
	fileName  string
	lastSaved entry.Stamp
	// gen counts whole-session replacements (load, restore, unload).
	gen uint64

	mirror *store.Mirror
	now    func() time.Time
	logf   func(format string, args ...any)

	subMu sync.Mutex
	subs  map[int]chan Event
	next  int
}

// Option configures a Store.
type Option func(*Store)

// WithMirror persists every change to m. Without a mirror the Store lives in
// memory only.
func WithMirror(m *store.Mirror) Option {
	return func(s *Store) {
		s.mirror = m
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets where non-fatal problems are reported.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(s *Store) {
		s.logf = logf
	}
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		now:  time.Now,
		logf: stderrf,
		subs: map[int]chan Event{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func stderrf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "notd: "+format+"\n", args...)
}

// Entries returns a copy of the collection in display order.
func (s *Store) Entries() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entriesLocked()
}

func (s *Store) entriesLocked() []entry.Entry {
	out := make([]entry.Entry, len(s.records))
	for i, r := range s.records {
		out[i] = r.entry
	}
	return out
}

// List returns the collection with positions and ids.
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.records))
	for i, r := range s.records {
		out[i] = Item{Index: i, ID: r.id, Entry: r.entry}
	}
	return out
}

// Len is the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// FileName is the name of the file the session is associated with, or "".
func (s *Store) FileName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fileName
}

// LastSaved is the marker of the last load or save, or the zero Stamp.
func (s *Store) LastSaved() entry.Stamp {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved
}

// IDAt returns the id of the entry at index.
func (s *Store) IDAt(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inRange(index) {
		return "", false
	}
	return s.records[index].id, true
}

// IndexOf returns the current index of id, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(id)
}

func (s *Store) indexLocked(id string) int {
	for i, r := range s.records {
		if r.id == id {
			return i
		}
	}
	return -1
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.records)
}

// Search returns the entries whose "timestamp sender time note" text
// contains query, ignoring case. Indices are current positions.
func (s *Store) Search(query string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Item
	for i, r := range s.records {
		if r.entry.Matches(query) {
			out = append(out, Item{Index: i, ID: r.id, Entry: r.entry})
		}
	}
	return out
}

func newRecords(entries []entry.Entry) []record {
	out := make([]record, len(entries))
	for i, e := range entries {
		out[i] = record{id: uuid.NewString(), entry: e}
	}
	return out
}

// stateLocked is the mirror view of the session.
func (s *Store) stateLocked() store.State {
	return store.State{
		Entries:   s.entriesLocked(),
		FileName:  s.fileName,
		LastSaved: s.lastSaved,
	}
}

// persistLocked rewrites the mirror. Failures are reported and swallowed:
// the in-memory state stays authoritative.
func (s *Store) persistLocked() {
	if s.mirror == nil {
		return
	}
	if err := s.mirror.Write(s.stateLocked()); err != nil {
		s.logf("%v", fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}
}
