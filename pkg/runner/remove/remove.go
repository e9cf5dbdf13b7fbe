package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/prompt"
)

// Remove deletes the entry at Index. Entries after it move up by one.
type Remove struct {
	Store *diary.Store
	Index int

	// Interactive with a negative Index lets the user pick the entry.
	Interactive bool
	Prompt      prompt.IO

	Out  io.Writer
	JSON bool
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("delete: no diary")
	}
	out := n.Out
	if out == nil {
		out = io.Discard
	}

	items := n.Store.List()
	index := n.Index
	if index < 0 && n.Interactive {
		i, err := n.Prompt.Select("Delete which entry", items)
		if errors.Is(err, files.ErrCancelled) {
			_, _ = fmt.Fprintln(out, "cancelled")
			return nil
		}
		if err != nil {
			return err
		}
		index = i
	}

	if index < 0 || index >= len(items) || !n.Store.DeleteEntry(index) {
		_, _ = fmt.Fprintf(out, "no entry %d\n", index+1)
		return nil
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(map[string]any{"deleted": items[index], "remaining": n.Store.Len()})
	}
	_, _ = fmt.Fprint(out, "deleted ")
	pp.Entry(index, items[index].Entry)
	return nil
}
