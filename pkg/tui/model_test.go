package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/store"
)

func fixedNow() time.Time {
	return time.Date(2025, 10, 28, 14, 30, 0, 0, time.Local)
}

func newTestModel(t *testing.T, notes ...string) (*Model, *diary.Store, *store.Mirror) {
	t.Helper()
	mirror := store.NewMirror(store.NewMemory())
	s := diary.New(diary.WithMirror(mirror), diary.WithClock(fixedNow), diary.WithLogger(func(string, ...any) {}))
	for _, n := range notes {
		s.SaveEntry(entry.Entry{Timestamp: "10/28/25", Time: "14:30", Sender: "Cafe", Note: n})
	}
	m := New(context.Background(), Options{Store: s, Mirror: mirror})
	t.Cleanup(m.Close)
	return m, s, mirror
}

func press(m *Model, k string) {
	var msg tea.KeyMsg
	switch k {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m.Update(msg)
}

type recordingSaver struct {
	name string
}

func (r *recordingSaver) Save(_ context.Context, name string, _ []byte) (string, error) {
	r.name = name
	return "/tmp/" + name, nil
}

func TestDeleteUsesCursorOverRenderedList(t *testing.T) {
	m, s, _ := newTestModel(t, "a", "b", "c")

	press(m, "down")
	press(m, "d")
	if got := notes(s); got != "a,c" {
		t.Fatalf("after first delete: %s", got)
	}
	// The cursor stays on position 1, which is now "c".
	press(m, "d")
	if got := notes(s); got != "a" {
		t.Fatalf("after second delete: %s", got)
	}
	press(m, "d")
	press(m, "d")
	if s.Len() != 0 {
		t.Fatalf("expected empty diary, got %d", s.Len())
	}
	press(m, "d")
	if !strings.Contains(m.View(), "no entries") {
		t.Errorf("empty view:\n%s", m.View())
	}
}

func TestCursorBounds(t *testing.T) {
	m, _, _ := newTestModel(t, "a", "b")
	press(m, "up")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	press(m, "G")
	press(m, "down")
	if m.cursor != 1 {
		t.Fatalf("cursor = %d", m.cursor)
	}
	press(m, "g")
	if m.cursor != 0 {
		t.Fatalf("cursor = %d", m.cursor)
	}
}

func TestSave(t *testing.T) {
	m, s, _ := newTestModel(t, "a")
	saver := &recordingSaver{}
	m.saver = saver

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m.Update(cmd())
	if saver.name != "diary-entries-2025-10-28.json" {
		t.Errorf("saved as %q", saver.name)
	}
	if s.LastSaved() != entry.NewStamp(fixedNow()) {
		t.Errorf("LastSaved = %q", s.LastSaved())
	}
	view := m.View()
	if !strings.Contains(view, "saved /tmp/diary-entries-2025-10-28.json") || !strings.Contains(view, "10.28::14:30") {
		t.Errorf("status not shown:\n%s", view)
	}
}

func TestSaveEmpty(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.saver = &recordingSaver{}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	if cmd != nil {
		t.Fatal("save on empty diary must not run")
	}
	if !strings.Contains(m.View(), "no entries to save") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestReloadPicksUpOtherSessions(t *testing.T) {
	m, s, mirror := newTestModel(t, "mine")

	other := []entry.Entry{{Timestamp: "1/1/20", Time: "09:00", Sender: "Home", Note: "theirs"}}
	if err := mirror.Write(store.State{Entries: other, FileName: "shared.json"}); err != nil {
		t.Fatal(err)
	}
	m.Update(mirrorChangedMsg{})
	if got := notes(s); got != "theirs" {
		t.Fatalf("entries = %s", got)
	}
	if !strings.Contains(m.View(), "updated by another session") {
		t.Errorf("view:\n%s", m.View())
	}

	m.message = ""
	m.Update(mirrorChangedMsg{})
	if m.message != "" {
		t.Errorf("unchanged mirror triggered a reload: %q", m.message)
	}

	press(m, "r")
	if !strings.Contains(m.View(), "reloaded from local storage") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestViewFitsWidth(t *testing.T) {
	m, _, _ := newTestModel(t, strings.Repeat("long note ", 30))
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	for _, line := range strings.Split(m.View(), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 60 {
			t.Errorf("line is %d wide: %q", w, line)
		}
	}
}

func TestStoreEventsRefresh(t *testing.T) {
	m, s, _ := newTestModel(t, "a")
	s.SaveEntry(entry.Entry{Timestamp: "10/28/25", Time: "15:00", Sender: "Park", Note: "b"})
	msg := m.waitForStore()()
	if _, ok := msg.(storeChangedMsg); !ok {
		t.Fatalf("got %T", msg)
	}
	m.Update(msg)
	if len(m.items) != 2 || !strings.Contains(m.View(), "Park") {
		t.Errorf("view not refreshed:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func notes(s *diary.Store) string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Note)
	}
	return strings.Join(out, ",")
}
