package list

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/timeutil"
)

// List prints the whole diary with a status footer.
type List struct {
	Store  *diary.Store
	ShowID bool

	// Since limits the listing to entries dated inside the window.
	Since timeutil.Window
	Now   func() time.Time

	Out  io.Writer
	JSON bool
}

// Listing is the JSON shape of list and search output.
type Listing struct {
	FileName  string       `json:"fileName,omitempty"`
	LastSaved string       `json:"lastSaved,omitempty"`
	Query     string       `json:"query,omitempty"`
	Since     string       `json:"since,omitempty"`
	Entries   []diary.Item `json:"entries"`
}

func (n *List) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("list: no diary")
	}
	items := n.Store.List()
	if !n.Since.IsZero() {
		items = Within(items, n.Since, n.now())
	}
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}

	if n.JSON {
		l := Listing{
			FileName:  n.Store.FileName(),
			LastSaved: n.Store.LastSaved().String(),
			Entries:   items,
		}
		if !n.Since.IsZero() {
			l.Since = n.Since.String()
		}
		return pp.JSON(l)
	}

	title := n.Store.FileName()
	if title == "" {
		title = "Diary"
	}
	if !n.Since.IsZero() {
		title = fmt.Sprintf("%s, last %s", title, n.Since)
	}
	pp.TitleWithCount(title, len(items))
	pp.Entries(items...)
	pp.Status(n.Store.FileName(), n.Store.LastSaved(), n.Store.Len())
	return nil
}

func (n *List) now() time.Time {
	if n.Now != nil {
		return n.Now()
	}
	return time.Now()
}

// Within keeps the items whose date falls inside w. Entries with free text
// dates are dropped. Indices are left untouched.
func Within(items []diary.Item, w timeutil.Window, now time.Time) []diary.Item {
	out := make([]diary.Item, 0, len(items))
	for _, it := range items {
		at, ok := it.Entry.At(now.Location())
		if ok && w.Contains(at, now) {
			out = append(out, it)
		}
	}
	return out
}
