package store

import (
	"errors"
	"fmt"

	"tableflip.dev/notd/pkg/document"
	"tableflip.dev/notd/pkg/entry"
)

// Keys under which the session is mirrored. The names match the browser
// build so exported mirrors stay interchangeable.
const (
	KeyEntries  = "diary_entries"
	KeyFileName = "diary_filename"
	KeyStamp    = "diary_timestamp"
)

// ErrCorrupt is returned by Mirror.Read when the entries key holds something
// that is not an entry array. Callers treat it like a first run.
var ErrCorrupt = errors.New("store: mirrored entries unreadable")

// State is one mirrored session.
type State struct {
	Entries   []entry.Entry
	FileName  string
	LastSaved entry.Stamp
}

// Mirror maps a session State onto three KV keys.
type Mirror struct {
	kv KV
}

// NewMirror wraps kv.
func NewMirror(kv KV) *Mirror {
	return &Mirror{kv: kv}
}

// Write stores all three keys. A zero LastSaved removes the timestamp key so a
// stale marker never outlives the file it described.
func (m *Mirror) Write(s State) error {
	data, err := document.EncodeEntries(s.Entries)
	if err != nil {
		return fmt.Errorf("store: encode entries: %w", err)
	}
	if err := m.kv.Set(KeyEntries, string(data)); err != nil {
		return err
	}
	if err := m.kv.Set(KeyFileName, s.FileName); err != nil {
		return err
	}
	if s.LastSaved.IsZero() {
		return m.kv.Remove(KeyStamp)
	}
	return m.kv.Set(KeyStamp, string(s.LastSaved))
}

// Read returns the mirrored State. ok is false when nothing was mirrored yet.
func (m *Mirror) Read() (s State, ok bool, err error) {
	raw, found, err := m.kv.Get(KeyEntries)
	if err != nil {
		return State{}, false, err
	}
	if !found {
		return State{}, false, nil
	}
	entries, err := document.DecodeEntries([]byte(raw))
	if err != nil {
		return State{}, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	name, _, err := m.kv.Get(KeyFileName)
	if err != nil {
		return State{}, false, err
	}
	stamp, _, err := m.kv.Get(KeyStamp)
	if err != nil {
		return State{}, false, err
	}
	return State{Entries: entries, FileName: name, LastSaved: entry.Stamp(stamp)}, true, nil
}

// Clear removes every mirrored key.
func (m *Mirror) Clear() error {
	var errs []error
	for _, k := range []string{KeyEntries, KeyFileName, KeyStamp} {
		if err := m.kv.Remove(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
