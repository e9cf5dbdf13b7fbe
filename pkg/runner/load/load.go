package load

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/printers"
)

// Load replaces the diary with the contents of the file at Path.
type Load struct {
	Store *diary.Store
	Path  string
	Out   io.Writer
	JSON  bool
}

func (n *Load) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("load: no diary")
	}
	src, err := files.Open(n.Path)
	if err != nil {
		return err
	}
	entries, err := n.Store.LoadFromFile(ctx, src)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if n.JSON {
		return pp.JSON(map[string]any{
			"path":      src.Path(),
			"fileName":  n.Store.FileName(),
			"lastSaved": n.Store.LastSaved().String(),
			"count":     len(entries),
		})
	}
	out := n.Out
	if out == nil {
		out = io.Discard
	}
	_, _ = fmt.Fprintf(out, "loaded %s\n", src.Path())
	pp.Status(n.Store.FileName(), n.Store.LastSaved(), len(entries))
	return nil
}
