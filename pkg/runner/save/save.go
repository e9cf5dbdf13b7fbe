package save

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/printers"
)

// Save exports the diary through Saver.
type Save struct {
	Store *diary.Store
	Saver files.Saver
	Out   io.Writer
	JSON  bool
}

func (n *Save) Do(ctx context.Context) error {
	if n.Store == nil || n.Saver == nil {
		return errors.New("save: not configured")
	}
	res, err := n.Store.SaveToFile(ctx, n.Saver)
	if errors.Is(err, diary.ErrEmptyCollection) {
		return errors.New("no entries to save")
	}
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(map[string]any{
			"cancelled":  res.Cancelled,
			"superseded": res.Superseded,
			"path":       res.Path,
			"fileName":   res.FileName,
			"lastSaved":  res.LastSaved.String(),
		})
	}
	out := n.Out
	if out == nil {
		out = io.Discard
	}
	if res.Cancelled {
		_, _ = fmt.Fprintln(out, "save cancelled")
		return nil
	}
	_, _ = fmt.Fprintf(out, "saved %s\n", res.Path)
	if res.Superseded {
		_, _ = fmt.Fprintln(out, "the diary was replaced while saving; the file holds the previous one")
	}
	pp.Status(n.Store.FileName(), n.Store.LastSaved(), n.Store.Len())
	return nil
}
