package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/runner/list"
	"tableflip.dev/notd/pkg/runner/load"
	"tableflip.dev/notd/pkg/runner/save"
	"tableflip.dev/notd/pkg/store"
)

// isolate points the configuration at fresh directories for one test.
func isolate(t *testing.T) (downloads string) {
	t.Helper()
	root := t.TempDir()
	downloads = filepath.Join(root, "downloads")
	if err := os.MkdirAll(downloads, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NOTD_CONFIG_PATH", root)
	t.Setenv("NOTD_PATH", filepath.Join(root, "db"))
	t.Setenv("NOTD_DOWNLOADS", downloads)
	t.Setenv("NOTD_INTERACTIVE", "false")
	return downloads
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	out := new(bytes.Buffer)
	cmd := New()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(out)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("notd %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out.String()
}

func listing(t *testing.T) list.Listing {
	t.Helper()
	var l list.Listing
	out := run(t, "list", "--json")
	if err := json.Unmarshal([]byte(out), &l); err != nil {
		t.Fatalf("list --json: %v\n%s", err, out)
	}
	return l
}

func TestCommandsRoundTrip(t *testing.T) {
	downloads := isolate(t)

	run(t, "add", "--on", "2025-10-28", "--time", "14:30", "-p", "Coffee Shop", "had", "a", "latte")
	run(t, "add", "--on", "2025-10-28", "--time", "18:00", "-p", "Home", "cooked dinner")

	l := listing(t)
	if len(l.Entries) != 2 {
		t.Fatalf("want 2 entries after add, got %d", len(l.Entries))
	}
	if got := l.Entries[0].Entry.Note; got != "had a latte" {
		t.Errorf("first note = %q", got)
	}

	run(t, "edit", "2", "--note", "burnt dinner")
	if got := listing(t).Entries[1].Entry; got.Note != "burnt dinner" || got.Sender != "Home" {
		t.Errorf("edit changed the wrong fields: %+v", got)
	}

	if out := run(t, "delete", "7"); !strings.Contains(out, "no entry 7") {
		t.Errorf("delete out of range printed %q", out)
	}

	out := run(t, "save", "--to", downloads)
	if !strings.Contains(out, "saved ") {
		t.Errorf("save printed %q", out)
	}
	matches, err := filepath.Glob(filepath.Join(downloads, "diary-entries-*.json"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("want one saved file in %s, got %v (%v)", downloads, matches, err)
	}

	run(t, "unload")
	if n := len(listing(t).Entries); n != 0 {
		t.Fatalf("want empty diary after unload, got %d", n)
	}

	run(t, "load", matches[0])
	l = listing(t)
	if len(l.Entries) != 2 {
		t.Fatalf("want 2 entries after load, got %d", len(l.Entries))
	}
	if l.FileName != filepath.Base(matches[0]) {
		t.Errorf("file name = %q, want %q", l.FileName, filepath.Base(matches[0]))
	}
	if l.LastSaved == "" {
		t.Error("expected the saved stamp to come back with the file")
	}
}

func TestSaveEmptyDiary(t *testing.T) {
	downloads := isolate(t)

	cmd := New()
	out := new(bytes.Buffer)
	cmd.SetArgs([]string{"save", "--to", downloads})
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no entries to save") {
		t.Fatalf("want no entries error, got %v", err)
	}
}

func TestDeleteReindexes(t *testing.T) {
	isolate(t)

	for _, note := range []string{"one", "two", "three"} {
		run(t, "add", "--on", "2025-10-28", "--time", "09:00", "-p", "Desk", note)
	}
	run(t, "rm", "1")

	l := listing(t)
	if len(l.Entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(l.Entries))
	}
	for i, want := range []string{"two", "three"} {
		if l.Entries[i].Index != i || l.Entries[i].Entry.Note != want {
			t.Errorf("entry %d = %+v, want note %q", i, l.Entries[i], want)
		}
	}
}

func TestAddRequiresNote(t *testing.T) {
	isolate(t)

	cmd := New()
	cmd.SetArgs([]string{"add", "-p", "Home"})
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected add without a note to fail")
	}
}

// unreadableKV fails every call, like a mirror directory that cannot be read.
type unreadableKV struct{}

func (unreadableKV) Get(string) (string, bool, error) { return "", false, errors.New("permission denied") }
func (unreadableKV) Set(string, string) error         { return errors.New("permission denied") }
func (unreadableKV) Remove(string) error              { return errors.New("permission denied") }

func TestUnreadableMirrorStillLoadsAndSaves(t *testing.T) {
	downloads := isolate(t)
	cfg, err := store.LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	s := newSession(cfg, nil, unreadableKV{})
	if !errors.Is(s.mirrorErr, diary.ErrStorageUnavailable) {
		t.Fatalf("mirrorErr = %v, want ErrStorageUnavailable", s.mirrorErr)
	}
	if s.diary.Len() != 0 {
		t.Fatalf("want an empty diary, got %d entries", s.diary.Len())
	}

	good := filepath.Join(t.TempDir(), "good.json")
	doc := `{"lastSaved":"10-28-14-30","entries":[{"timestamp":"10/28/25","time":"14:30","sender":"Coffee Shop","note":"had a latte"}]}`
	if err := os.WriteFile(good, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	l := load.Load{Store: s.diary, Path: good, Out: new(bytes.Buffer)}
	if err := l.Do(ctx); err != nil {
		t.Fatalf("load with an unreadable mirror: %v", err)
	}
	if s.diary.Len() != 1 || s.diary.FileName() != "good.json" {
		t.Fatalf("after load: %d entries, file %q", s.diary.Len(), s.diary.FileName())
	}

	sv := save.Save{Store: s.diary, Saver: s.download(), Out: new(bytes.Buffer)}
	if err := sv.Do(ctx); err != nil {
		t.Fatalf("save with an unreadable mirror: %v", err)
	}
	if _, err := os.Stat(filepath.Join(downloads, "good.json")); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
}
