// Package tui is the full-screen list view of the diary.
package tui

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/printers"
	"tableflip.dev/notd/pkg/store"
)

// Options are the collaborators of the view. Only Store is required.
type Options struct {
	Store *diary.Store
	// Saver receives the export when "s" is pressed.
	Saver files.Saver
	// Mirror is compared against the Store when Watch fires.
	Mirror *store.Mirror
	// Watch reports writes to the mirror made by other sessions.
	Watch <-chan store.Event
}

// Model renders every entry on each change and forwards key presses to the
// Store.
type Model struct {
	ctx    context.Context
	store  *diary.Store
	saver  files.Saver
	mirror *store.Mirror
	watch  <-chan store.Event

	events <-chan diary.Event
	cancel func()

	items  []diary.Item
	cursor int
	offset int

	message string
	err     error

	keys     keyMap
	help     help.Model
	showHelp bool

	width  int
	height int
}

type storeChangedMsg struct{ op diary.Op }
type mirrorChangedMsg struct{}
type savedMsg struct{ res diary.SaveResult }
type errMsg struct{ err error }

// New builds the model and subscribes it to store changes. Call Close when
// the program ends.
func New(ctx context.Context, o Options) *Model {
	events, cancel := o.Store.Subscribe()
	m := &Model{
		ctx:    ctx,
		store:  o.Store,
		saver:  o.Saver,
		mirror: o.Mirror,
		watch:  o.Watch,
		events: events,
		cancel: cancel,
		keys:   defaultKeyMap(),
		help:   help.New(),
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

// Close ends the store subscription.
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForStore(), m.waitForMirror())
}

func (m *Model) waitForStore() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeChangedMsg{op: ev.Op}
	}
}

func (m *Model) waitForMirror() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	watch := m.watch
	return func() tea.Msg {
		if _, ok := <-watch; !ok {
			return nil
		}
		return mirrorChangedMsg{}
	}
}

func (m *Model) refresh() {
	m.items = m.store.List()
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case storeChangedMsg:
		m.refresh()
		return m, m.waitForStore()

	case mirrorChangedMsg:
		if m.mirrorDiffers() {
			m.reload("updated by another session")
		}
		return m, m.waitForMirror()

	case savedMsg:
		switch {
		case msg.res.Cancelled:
			m.message = "save cancelled"
		case msg.res.Superseded:
			m.message = "saved " + msg.res.Path + " (diary replaced meanwhile)"
		default:
			m.message = "saved " + msg.res.Path
		}
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		if len(m.items) > 0 {
			m.cursor = len(m.items) - 1
		}
	case key.Matches(msg, m.keys.Delete):
		m.deleteAtCursor()
	case key.Matches(msg, m.keys.Save):
		return m, m.save()
	case key.Matches(msg, m.keys.Reload):
		m.reload("reloaded from local storage")
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

// deleteAtCursor removes the entry under the cursor. The index is the
// cursor's position in the list as currently rendered.
func (m *Model) deleteAtCursor() {
	if len(m.items) == 0 {
		return
	}
	index := m.cursor
	gone := m.items[index].Entry
	if m.store.DeleteEntry(index) {
		m.message = fmt.Sprintf("deleted %s: %s", gone.Sender, gone.Note)
		m.err = nil
	}
	m.refresh()
}

func (m *Model) save() tea.Cmd {
	if m.saver == nil {
		m.err = errors.New("saving is not configured")
		return nil
	}
	if len(m.items) == 0 {
		m.err = errors.New("no entries to save")
		return nil
	}
	ctx, s, saver := m.ctx, m.store, m.saver
	m.message = "saving..."
	return func() tea.Msg {
		res, err := s.SaveToFile(ctx, saver)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{res}
	}
}

func (m *Model) reload(message string) {
	res, err := m.store.LoadFromLocalStorage()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	if res.OK {
		m.message = message
	} else {
		m.message = "nothing in local storage"
	}
	m.refresh()
}

// mirrorDiffers reports whether the mirror holds something other than what
// the view shows, so our own writes do not trigger a reload.
func (m *Model) mirrorDiffers() bool {
	if m.mirror == nil {
		return false
	}
	st, ok, err := m.mirror.Read()
	if err != nil || !ok {
		return false
	}
	return st.FileName != m.store.FileName() ||
		st.LastSaved != m.store.LastSaved() ||
		!reflect.DeepEqual(st.Entries, m.store.Entries())
}

func (m *Model) View() string {
	var b strings.Builder

	title := m.store.FileName()
	if title == "" {
		title = "notd"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d", len(m.items))))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(emptyStyle.Render("no entries"))
		b.WriteString("\n")
	} else {
		first, last := m.visible()
		for i := first; i < last; i++ {
			b.WriteString(m.renderItem(i))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(printers.StatusLine(m.store.FileName(), m.store.LastSaved(), len(m.items))))
	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.message != "":
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderItem(i int) string {
	e := m.items[i].Entry
	place := placeStyle.Render(e.Sender)
	line := fmt.Sprintf("%3d  %s %s  %s: %s", i+1, e.Timestamp, e.Time, place, e.Note)
	width := m.width - 3
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	if i == m.cursor {
		return selectedItemStyle.Render("▸ " + line)
	}
	return itemStyle.Render(line)
}

// visible returns the window of items that fits the terminal and contains
// the cursor.
func (m *Model) visible() (int, int) {
	rows := m.height - 7
	if m.showHelp {
		rows -= 3
	}
	if rows < 1 {
		rows = 1
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	last := m.offset + rows
	if last > len(m.items) {
		last = len(m.items)
	}
	return m.offset, last
}
