package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

const (
	// LayoutDate is the conventional Entry.Timestamp layout (MM/DD/YY).
	LayoutDate = "01/02/06"
	// LayoutClock is the conventional Entry.Time layout (HH:MM).
	LayoutClock = "15:04"

	layoutISO = "2006-01-02"
)

// Form is the raw, untrimmed input of the entry form.
type Form struct {
	Timestamp string
	Time      string
	Sender    string
	Note      string
}

// Defaults fills a blank date and time from now.
func (f *Form) Defaults(now time.Time) {
	if strings.TrimSpace(f.Timestamp) == "" {
		f.Timestamp = now.Format(LayoutDate)
	}
	if strings.TrimSpace(f.Time) == "" {
		f.Time = now.Format(LayoutClock)
	}
}

// Validate trims every field and fails with ErrMissingField naming the first
// blank one.
func (f Form) Validate() (Entry, error) {
	e := Entry{
		Timestamp: strings.TrimSpace(f.Timestamp),
		Time:      strings.TrimSpace(f.Time),
		Sender:    strings.TrimSpace(f.Sender),
		Note:      strings.TrimSpace(f.Note),
	}
	for _, field := range []struct{ name, value string }{
		{"date", e.Timestamp},
		{"time", e.Time},
		{"place", e.Sender},
		{"note", e.Note},
	} {
		if field.value == "" {
			return Entry{}, fmt.Errorf("%w: %s", ErrMissingField, field.name)
		}
	}
	return e, nil
}

// ParseOn resolves a user supplied date into the Entry.Timestamp layout. It
// accepts YYYY-MM-DD, MM/DD/YY and natural language such as "yesterday".
func ParseOn(v string, now time.Time) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return now.Format(LayoutDate), nil
	}
	for _, layout := range []string{layoutISO, LayoutDate, "01/02/2006", "1/2/06"} {
		if t, err := time.ParseInLocation(layout, v, now.Location()); err == nil {
			return t.Format(LayoutDate), nil
		}
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(v, now)
	if err != nil {
		return "", fmt.Errorf("entry: parse date %q: %w", v, err)
	}
	if r == nil {
		return "", fmt.Errorf("entry: unrecognized date %q", v)
	}
	return r.Time.Format(LayoutDate), nil
}

// ParseClock checks v is an HH:MM time and returns it normalized.
func ParseClock(v string) (string, error) {
	t, err := time.Parse(LayoutClock, strings.TrimSpace(v))
	if err != nil {
		return "", fmt.Errorf("entry: parse time %q: %w", v, err)
	}
	return t.Format(LayoutClock), nil
}
