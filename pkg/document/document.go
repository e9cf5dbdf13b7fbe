// Package document reads and writes the persisted diary file format.
//
// Two shapes exist on disk. Legacy files are a bare JSON array of entries.
// Versioned files wrap the array as {"lastSaved": "MM-DD-HH-MM", "entries": [...]}.
// Decode accepts both; Encode always writes the versioned shape.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"tableflip.dev/notd/pkg/entry"
)

var (
	// ErrParse is returned when the input is not valid JSON.
	ErrParse = errors.New("document: not valid JSON")
	// ErrInvalidFormat is returned for valid JSON that is neither an entry
	// array nor an object with an "entries" array.
	ErrInvalidFormat = errors.New("document: invalid format")
)

// Kind tags which on-disk shape a Document was decoded from.
type Kind int

const (
	// KindVersioned is {"lastSaved": ..., "entries": [...]}.
	KindVersioned Kind = iota
	// KindLegacy is a bare array of entries.
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindVersioned:
		return "versioned"
	case KindLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Document is a decoded diary file.
type Document struct {
	Kind      Kind
	LastSaved entry.Stamp
	Entries   []entry.Entry
}

// versioned is the wire shape written by Encode.
type versioned struct {
	LastSaved entry.Stamp   `json:"lastSaved,omitempty"`
	Entries   []entry.Entry `json:"entries"`
}

// Decode inspects the root value and decodes it as a versioned or legacy
// document. Entries are taken as-is; fields are not validated.
func Decode(data []byte) (*Document, error) {
	var root json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root = bytes.TrimSpace(root)

	switch {
	case len(root) > 0 && root[0] == '{':
		return decodeObject(root)
	case len(root) > 0 && root[0] == '[':
		entries, err := decodeEntries(root)
		if err != nil {
			return nil, err
		}
		return &Document{Kind: KindLegacy, Entries: entries}, nil
	default:
		return nil, ErrInvalidFormat
	}
}

func decodeObject(root json.RawMessage) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(root, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	raw, ok := fields["entries"]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || raw[0] != '[' {
		return nil, ErrInvalidFormat
	}
	entries, err := decodeEntries(raw)
	if err != nil {
		return nil, err
	}

	doc := &Document{Kind: KindVersioned, Entries: entries}
	if ls, ok := fields["lastSaved"]; ok {
		var s string
		// A non-string lastSaved is ignored rather than failing the load.
		if err := json.Unmarshal(ls, &s); err == nil {
			doc.LastSaved = entry.Stamp(s)
		}
	}
	return doc, nil
}

func decodeEntries(raw json.RawMessage) ([]entry.Entry, error) {
	entries := make([]entry.Entry, 0)
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("%w: entries: %v", ErrInvalidFormat, err)
	}
	return entries, nil
}

// Encode writes doc in the versioned shape, indented by two spaces. Kind is
// ignored.
func Encode(doc *Document) ([]byte, error) {
	v := versioned{Entries: doc.Entries}
	if v.Entries == nil {
		v.Entries = []entry.Entry{}
	}
	v.LastSaved = doc.LastSaved
	return json.MarshalIndent(v, "", "  ")
}

// EncodeEntries is the compact array form used by the local mirror.
func EncodeEntries(entries []entry.Entry) ([]byte, error) {
	if entries == nil {
		entries = []entry.Entry{}
	}
	return json.Marshal(entries)
}

// DecodeEntries parses the mirror's compact array form.
func DecodeEntries(data []byte) ([]entry.Entry, error) {
	entries := make([]entry.Entry, 0)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return entries, nil
}
