package unload

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Store is the part of the diary Unload needs.
type Store interface {
	Len() int
	FileName() string
	Unload() error
}

// Unload forgets the current diary and clears the local mirror.
type Unload struct {
	Store Store
	Out   io.Writer
}

func (n *Unload) Do(ctx context.Context) error {
	if n.Store == nil {
		return errors.New("unload: no diary")
	}
	count, name := n.Store.Len(), n.Store.FileName()
	if err := n.Store.Unload(); err != nil {
		return err
	}
	if n.Out == nil {
		return nil
	}
	if name == "" {
		name = "diary"
	}
	_, err := fmt.Fprintf(n.Out, "unloaded %s (%d entries)\n", name, count)
	return err
}
