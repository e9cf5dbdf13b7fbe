package add

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

// Add appends one entry built from the form flags, or from the interactive
// form when Interactive is set.
type Add struct {
	Store *diary.Store

	Form        entry.Form
	On          string
	Interactive bool
	Prompt      prompt.IO

	Now  func() time.Time
	Out  io.Writer
	JSON bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("add: no diary")
	}
	now := time.Now()
	if n.Now != nil {
		now = n.Now()
	}

	f := n.Form
	if strings.TrimSpace(n.On) != "" {
		date, err := entry.ParseOn(n.On, now)
		if err != nil {
			return err
		}
		f.Timestamp = date
	}
	if strings.TrimSpace(f.Time) != "" {
		clock, err := entry.ParseClock(f.Time)
		if err != nil {
			return err
		}
		f.Time = clock
	}

	if n.Interactive {
		if err := n.Prompt.Form(&f, now); err != nil {
			if errors.Is(err, files.ErrCancelled) {
				_, _ = fmt.Fprintln(n.out(), "cancelled, nothing added")
				return nil
			}
			return err
		}
	}
	f.Defaults(now)

	e, err := f.Validate()
	if err != nil {
		return err
	}
	id := n.Store.SaveEntry(e)
	index := n.Store.IndexOf(id)

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(diary.Item{Index: index, ID: id, Entry: e})
	}
	pp.Entry(index, e)
	return nil
}

func (n *Add) out() io.Writer {
	if n.Out == nil {
		return io.Discard
	}
	return n.Out
}
