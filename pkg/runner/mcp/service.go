// Package mcp provides the Model Context Protocol server integration for notd.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/files"
)

// ErrEntryNotFound is returned when a reference does not resolve to an entry.
var ErrEntryNotFound = errors.New("entry not found")

// Service adapts a diary.Store to the shapes the MCP tools speak.
type Service struct {
	Store *diary.Store
	Saver files.Saver
	Now   func() time.Time
}

// Ref addresses an entry by id, or by zero-based index when ID is empty.
type Ref struct {
	ID    string
	Index int
}

// AddEntryOptions captures the parameters used to create a new entry.
// Blank Date and Time default to now.
type AddEntryOptions struct {
	Date  string
	Time  string
	Place string
	Note  string
}

// EntryDTO is a transport-friendly projection of an entry.
type EntryDTO struct {
	ID        string `json:"id"`
	Index     int    `json:"index"`
	Timestamp string `json:"timestamp"`
	Time      string `json:"time"`
	Sender    string `json:"sender"`
	Note      string `json:"note"`
}

// SessionDTO summarises the Store's session.
type SessionDTO struct {
	FileName   string `json:"fileName,omitempty"`
	LastSaved  string `json:"lastSaved,omitempty"`
	Count      int    `json:"count"`
	Path       string `json:"path,omitempty"`
	Cancelled  bool   `json:"cancelled,omitempty"`
	Superseded bool   `json:"superseded,omitempty"`
}

// NewService builds a service around store. Saves go through saver.
func NewService(store *diary.Store, saver files.Saver) *Service {
	return &Service{Store: store, Saver: saver, Now: time.Now}
}

func (s *Service) check() error {
	if s.Store == nil {
		return errors.New("store is not configured")
	}
	return nil
}

// ListEntries returns every entry in display order.
func (s *Service) ListEntries(ctx context.Context) ([]EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return toDTOs(s.Store.List()), nil
}

// Session reports the file name, marker and size of the session.
func (s *Service) Session(ctx context.Context) (SessionDTO, error) {
	if err := s.check(); err != nil {
		return SessionDTO{}, err
	}
	return SessionDTO{
		FileName:  s.Store.FileName(),
		LastSaved: s.Store.LastSaved().String(),
		Count:     s.Store.Len(),
	}, nil
}

// AddEntry validates opts through the entry form and appends the result.
func (s *Service) AddEntry(ctx context.Context, opts AddEntryOptions) (*EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	now := s.now()
	date, err := entry.ParseOn(opts.Date, now)
	if err != nil {
		return nil, err
	}
	form := entry.Form{Timestamp: date, Time: opts.Time, Sender: opts.Place, Note: opts.Note}
	form.Defaults(now)
	e, err := form.Validate()
	if err != nil {
		return nil, err
	}

	id := s.Store.SaveEntry(e)
	return s.byID(id)
}

// UpdateEntry overwrites the non-blank fields of opts on the referenced entry.
func (s *Service) UpdateEntry(ctx context.Context, ref Ref, opts AddEntryOptions) (*EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	cur, err := s.find(ref)
	if err != nil {
		return nil, err
	}

	form := entry.Form{Timestamp: cur.Timestamp, Time: cur.Time, Sender: cur.Sender, Note: cur.Note}
	if strings.TrimSpace(opts.Date) != "" {
		if form.Timestamp, err = entry.ParseOn(opts.Date, s.now()); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(opts.Time) != "" {
		form.Time = opts.Time
	}
	if strings.TrimSpace(opts.Place) != "" {
		form.Sender = opts.Place
	}
	if strings.TrimSpace(opts.Note) != "" {
		form.Note = opts.Note
	}
	e, err := form.Validate()
	if err != nil {
		return nil, err
	}

	if !s.Store.UpdateByID(cur.ID, e) {
		return nil, ErrEntryNotFound
	}
	return s.byID(cur.ID)
}

// DeleteEntry removes the referenced entry and returns it as it was.
func (s *Service) DeleteEntry(ctx context.Context, ref Ref) (*EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	cur, err := s.find(ref)
	if err != nil {
		return nil, err
	}
	if !s.Store.DeleteByID(cur.ID) {
		return nil, ErrEntryNotFound
	}
	return cur, nil
}

// SearchEntries returns up to limit entries matching query.
func (s *Service) SearchEntries(ctx context.Context, query string, limit int) ([]EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is required")
	}
	if limit <= 0 {
		limit = 20
	}
	results := toDTOs(s.Store.Search(query))
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// SaveFile exports the session through the service's saver.
func (s *Service) SaveFile(ctx context.Context) (SessionDTO, error) {
	if err := s.check(); err != nil {
		return SessionDTO{}, err
	}
	if s.Saver == nil {
		return SessionDTO{}, errors.New("saving is not configured")
	}
	res, err := s.Store.SaveToFile(ctx, s.Saver)
	if err != nil {
		return SessionDTO{}, err
	}
	out, _ := s.Session(ctx)
	out.Path = res.Path
	out.Cancelled = res.Cancelled
	out.Superseded = res.Superseded
	return out, nil
}

// LoadFile replaces the session with the diary file at path.
func (s *Service) LoadFile(ctx context.Context, path string) (SessionDTO, error) {
	if err := s.check(); err != nil {
		return SessionDTO{}, err
	}
	src, err := files.Open(path)
	if err != nil {
		return SessionDTO{}, err
	}
	if _, err := s.Store.LoadFromFile(ctx, src); err != nil {
		return SessionDTO{}, err
	}
	out, _ := s.Session(ctx)
	out.Path = src.Path()
	return out, nil
}

// EntryByID fetches a single entry.
func (s *Service) EntryByID(ctx context.Context, id string) (*EntryDTO, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	return s.byID(id)
}

func (s *Service) byID(id string) (*EntryDTO, error) {
	return s.find(Ref{ID: id})
}

func (s *Service) find(ref Ref) (*EntryDTO, error) {
	items := s.Store.List()
	if ref.ID != "" {
		for _, it := range items {
			if it.ID == ref.ID {
				dto := toDTO(it)
				return &dto, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, ref.ID)
	}
	if ref.Index < 0 || ref.Index >= len(items) {
		return nil, fmt.Errorf("%w: index %d", ErrEntryNotFound, ref.Index)
	}
	dto := toDTO(items[ref.Index])
	return &dto, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func toDTOs(items []diary.Item) []EntryDTO {
	out := make([]EntryDTO, 0, len(items))
	for _, it := range items {
		out = append(out, toDTO(it))
	}
	return out
}

func toDTO(it diary.Item) EntryDTO {
	return EntryDTO{
		ID:        it.ID,
		Index:     it.Index,
		Timestamp: it.Entry.Timestamp,
		Time:      it.Entry.Time,
		Sender:    it.Entry.Sender,
		Note:      it.Entry.Note,
	}
}
