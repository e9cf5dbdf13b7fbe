// Package entry defines a single diary record and the rules the entry form applies to it.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingField is returned by Form.Validate when a required field is blank.
var ErrMissingField = errors.New("entry: missing field")

// Entry is one journaled record. The JSON field names are the on-disk format and
// must not change; "sender" holds the place the note was written at.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Time      string `json:"time"`
	Sender    string `json:"sender"`
	Note      string `json:"note"`
}

// Matches reports whether q (case-insensitive) appears in the entry's
// searchable text.
func (e Entry) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.searchText()), q)
}

// At is the moment the entry describes, read in loc. ok is false when the
// date is free text that no known layout accepts.
func (e Entry) At(loc *time.Location) (t time.Time, ok bool) {
	date := strings.TrimSpace(e.Timestamp)
	for _, layout := range []string{LayoutDate, layoutISO, "01/02/2006"} {
		if d, err := time.ParseInLocation(layout, date, loc); err == nil {
			t, ok = d, true
			break
		}
	}
	if !ok {
		return time.Time{}, false
	}
	if c, err := time.Parse(LayoutClock, strings.TrimSpace(e.Time)); err == nil {
		t = t.Add(time.Duration(c.Hour())*time.Hour + time.Duration(c.Minute())*time.Minute)
	}
	return t, true
}

func (e Entry) searchText() string {
	return fmt.Sprintf("%s %s %s %s", e.Timestamp, e.Sender, e.Time, e.Note)
}

func (e Entry) String() string {
	if e.Time == "" {
		return fmt.Sprintf("%s  %s: %s", e.Timestamp, e.Sender, e.Note)
	}
	return fmt.Sprintf("%s %s  %s: %s", e.Timestamp, e.Time, e.Sender, e.Note)
}
