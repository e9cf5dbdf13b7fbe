package ui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/store"
	"tableflip.dev/notd/pkg/tui"
)

// UI runs the full-screen list view until the user quits.
type UI struct {
	Store *diary.Store
	// Local is watched for writes from other sessions. Optional.
	Local *store.Local
	Saver files.Saver
}

func (d *UI) Do(ctx context.Context) error {
	if d.Store == nil {
		return errors.New("ui: no diary")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := tui.Options{Store: d.Store, Saver: d.Saver}
	if d.Local != nil {
		watch, err := d.Local.Watch(ctx)
		if err != nil {
			return err
		}
		opts.Watch = watch
		opts.Mirror = store.NewMirror(d.Local)
	}

	m := tui.New(ctx, opts)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
