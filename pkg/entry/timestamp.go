package entry

import (
	"fmt"
	"strings"
	"time"
)

// LayoutStamp is the lastSaved layout: MM-DD-HH-MM, zero padded.
const LayoutStamp = "01-02-15-04"

// Stamp is the write-time "last saved" marker of a document. The zero value
// means no marker.
type Stamp string

// NewStamp formats t as a Stamp in t's location.
func NewStamp(t time.Time) Stamp {
	return Stamp(t.Format(LayoutStamp))
}

// IsZero reports whether there is no marker.
func (s Stamp) IsZero() bool {
	return s == ""
}

// Display renders the status line form MM.DD::HH:MM. Stamps that do not
// split into four parts are shown as is.
func (s Stamp) Display() string {
	parts := strings.Split(string(s), "-")
	if len(parts) != 4 {
		return string(s)
	}
	return fmt.Sprintf("%s.%s::%s:%s", parts[0], parts[1], parts[2], parts[3])
}

func (s Stamp) String() string {
	return string(s)
}
