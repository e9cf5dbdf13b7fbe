package diary

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"tableflip.dev/notd/pkg/document"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/store"
)

// Restored describes the outcome of LoadFromLocalStorage.
type Restored struct {
	OK        bool
	Entries   int
	FileName  string
	LastSaved entry.Stamp
}

// SaveResult describes the outcome of SaveToFile.
type SaveResult struct {
	Cancelled bool
	// Superseded is set when the session was replaced while the file was
	// being written. The file holds the old session and the new one keeps
	// its own file name and marker.
	Superseded bool
	Path      string
	FileName  string
	LastSaved entry.Stamp
}

// LoadFromFile replaces the session with the document read from src. On any
// read or decode failure the session is left untouched.
func (s *Store) LoadFromFile(ctx context.Context, src files.Source) ([]entry.Entry, error) {
	data, err := src.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("diary: load %s: %w", src.Name(), err)
	}

	s.mu.Lock()
	s.records = newRecords(doc.Entries)
	s.fileName = src.Name()
	s.lastSaved = doc.LastSaved
	s.gen++
	s.persistLocked()
	out := s.entriesLocked()
	s.mu.Unlock()

	s.emit(OpLoad)
	return out, nil
}

// LoadFromLocalStorage hydrates the session from the mirror. Nothing mirrored
// yet, or an unreadable entries key, is reported as Restored{OK: false} with
// no error and no state change.
func (s *Store) LoadFromLocalStorage() (Restored, error) {
	if s.mirror == nil {
		return Restored{}, nil
	}
	st, ok, err := s.mirror.Read()
	if errors.Is(err, store.ErrCorrupt) {
		s.logf("ignoring mirrored entries: %v", err)
		return Restored{}, nil
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		s.logf("%v", err)
		return Restored{}, err
	}
	if !ok {
		return Restored{}, nil
	}

	s.mu.Lock()
	s.records = newRecords(st.Entries)
	s.fileName = st.FileName
	s.lastSaved = st.LastSaved
	s.gen++
	s.mu.Unlock()

	s.emit(OpRestore)
	return Restored{OK: true, Entries: len(st.Entries), FileName: st.FileName, LastSaved: st.LastSaved}, nil
}

// SaveEntry appends e and returns its id.
func (s *Store) SaveEntry(e entry.Entry) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.records = append(s.records, record{id: id, entry: e})
	s.persistLocked()
	s.mu.Unlock()

	s.emit(OpAdd)
	return id
}

// UpdateEntry replaces the entry at index. An index outside the collection
// is ignored and reported as false.
func (s *Store) UpdateEntry(index int, e entry.Entry) bool {
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		return false
	}
	s.records[index].entry = e
	s.persistLocked()
	s.mu.Unlock()

	s.emit(OpUpdate)
	return true
}

// UpdateByID replaces the entry with the given id wherever it currently is.
func (s *Store) UpdateByID(id string, e entry.Entry) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.records[i].entry = e
	s.persistLocked()
	s.mu.Unlock()

	s.emit(OpUpdate)
	return true
}

// DeleteEntry removes the entry at index; later entries shift down by one.
// An index outside the collection is ignored and reported as false.
func (s *Store) DeleteEntry(index int) bool {
	s.mu.Lock()
	if !s.inRange(index) {
		s.mu.Unlock()
		return false
	}
	s.deleteLocked(index)
	s.mu.Unlock()

	s.emit(OpDelete)
	return true
}

// DeleteByID removes the entry with the given id.
func (s *Store) DeleteByID(id string) bool {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.deleteLocked(i)
	s.mu.Unlock()

	s.emit(OpDelete)
	return true
}

func (s *Store) deleteLocked(i int) {
	s.records = append(s.records[:i:i], s.records[i+1:]...)
	s.persistLocked()
}

// Unload forgets the session and clears the mirror.
func (s *Store) Unload() error {
	s.mu.Lock()
	s.records = nil
	s.fileName = ""
	s.lastSaved = ""
	s.gen++
	var err error
	if s.mirror != nil {
		if err = s.mirror.Clear(); err != nil {
			err = fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			s.logf("%v", err)
		}
	}
	s.mu.Unlock()

	s.emit(OpUnload)
	return err
}

// DefaultFileName is the name used when the session has no file yet.
func (s *Store) DefaultFileName() string {
	return "diary-entries-" + s.now().UTC().Format("2006-01-02") + ".json"
}

// SaveToFile exports the session through saver. The payload is captured
// before the saver runs; changes made while it runs are not part of it. If
// the session is replaced meanwhile, the result only reports the write.
// A cancelled save changes nothing and is not an error.
func (s *Store) SaveToFile(ctx context.Context, saver files.Saver) (SaveResult, error) {
	s.mu.Lock()
	if len(s.records) == 0 {
		s.mu.Unlock()
		return SaveResult{}, ErrEmptyCollection
	}
	stamp := entry.NewStamp(s.now())
	doc := &document.Document{
		Kind:      document.KindVersioned,
		LastSaved: stamp,
		Entries:   s.entriesLocked(),
	}
	name := s.fileName
	gen := s.gen
	s.mu.Unlock()

	if name == "" {
		name = s.DefaultFileName()
	}
	data, err := document.Encode(doc)
	if err != nil {
		return SaveResult{}, fmt.Errorf("diary: encode: %w", err)
	}

	path, err := saver.Save(ctx, name, data)
	if errors.Is(err, files.ErrCancelled) {
		return SaveResult{Cancelled: true}, nil
	}
	if err != nil {
		return SaveResult{}, fmt.Errorf("diary: save %s: %w", name, err)
	}

	saved := filepath.Base(path)
	res := SaveResult{Path: path, FileName: saved, LastSaved: stamp}
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		s.logf("saved %s, but the diary was replaced meanwhile; keeping %q", path, s.FileName())
		res.Superseded = true
		return res, nil
	}
	s.lastSaved = stamp
	s.fileName = saved
	s.persistLocked()
	s.mu.Unlock()

	s.emit(OpSave)
	return res, nil
}
