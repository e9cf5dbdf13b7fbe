package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/prompt"
)

// Edit replaces the entry at Index. Non-blank Form fields overwrite the
// current values; Interactive opens the form pre-filled with them. A
// negative Index with Interactive set lets the user pick the entry.
type Edit struct {
	Store *diary.Store
	Index int

	Form        entry.Form
	On          string
	Interactive bool
	Prompt      prompt.IO

	Now  func() time.Time
	Out  io.Writer
	JSON bool
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("edit: no diary")
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}
	out := n.Out
	if out == nil {
		out = io.Discard
	}

	items := n.Store.List()
	index := n.Index
	if index < 0 && n.Interactive {
		i, err := n.Prompt.Select("Edit which entry", items)
		if errors.Is(err, files.ErrCancelled) {
			_, _ = fmt.Fprintln(out, "cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		index = i
	}
	if index < 0 || index >= len(items) {
		_, _ = fmt.Fprintf(out, "no entry %d\n", index+1)
		return nil
	}

	cur := items[index].Entry
	f := entry.Form{Timestamp: cur.Timestamp, Time: cur.Time, Sender: cur.Sender, Note: cur.Note}
	if strings.TrimSpace(n.On) != "" {
		date, err := entry.ParseOn(n.On, now)
		if err != nil {
			return err
		}
		f.Timestamp = date
	}
	if strings.TrimSpace(n.Form.Time) != "" {
		clock, err := entry.ParseClock(n.Form.Time)
		if err != nil {
			return err
		}
		f.Time = clock
	}
	if strings.TrimSpace(n.Form.Sender) != "" {
		f.Sender = n.Form.Sender
	}
	if strings.TrimSpace(n.Form.Note) != "" {
		f.Note = n.Form.Note
	}

	if n.Interactive {
		if err := n.Prompt.Form(&f, now); err != nil {
			if errors.Is(err, files.ErrCancelled) {
				_, _ = fmt.Fprintln(out, "cancelled, entry unchanged")
				return nil
			}
			return err
		}
	}

	e, err := f.Validate()
	if err != nil {
		return err
	}
	if !n.Store.UpdateEntry(index, e) {
		_, _ = fmt.Fprintf(out, "no entry %d\n", index+1)
		return nil
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		id, _ := n.Store.IDAt(index)
		return pp.JSON(diary.Item{Index: index, ID: id, Entry: e})
	}
	pp.Entry(index, e)
	return nil
}
