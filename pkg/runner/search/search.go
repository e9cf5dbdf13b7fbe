package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/runner/list"
)

// Search prints the entries matching Query. Numbers are positions in the
// full diary, so they can be passed to edit and delete.
type Search struct {
	Store  *diary.Store
	Query  string
	ShowID bool
	Out    io.Writer
	JSON   bool
}

func (n *Search) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("search: no diary")
	}
	if strings.TrimSpace(n.Query) == "" {
		return errors.New("search: query is required")
	}
	items := n.Store.Search(n.Query)
	pp := printers.PrettyPrint{Out: n.Out, ShowID: n.ShowID}

	if n.JSON {
		if items == nil {
			items = []diary.Item{}
		}
		return pp.JSON(list.Listing{
			FileName:  n.Store.FileName(),
			LastSaved: n.Store.LastSaved().String(),
			Query:     n.Query,
			Entries:   items,
		})
	}

	pp.TitleWithCount(fmt.Sprintf("%q", n.Query), len(items))
	pp.Entries(items...)
	return nil
}
