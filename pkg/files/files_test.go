package files

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/manifoldco/promptui"
)

func TestOpenAndRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "june.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if src.Name() != "june.json" {
		t.Errorf("Name = %q", src.Name())
	}
	if src.Dir() != dir {
		t.Errorf("Dir = %q, want %q", src.Dir(), dir)
	}
	data, err := src.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("data = %q", data)
	}
}

func TestOpenRejectsMissingAndDirs(t *testing.T) {
	dir := t.TempDir()
	if _, err := Open(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Open(dir); err == nil {
		t.Error("expected error for directory")
	}
}

func TestReadAllHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Bytes{FileName: "x.json"}).ReadAll(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestDownloadWritesAndReplaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Downloads")
	d := Download{Dir: dir}

	path, err := d.Save(context.Background(), "diary-entries-2025-10-28.json", []byte("one"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if want := filepath.Join(dir, "diary-entries-2025-10-28.json"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := d.Save(context.Background(), "diary-entries-2025-10-28.json", []byte("two")); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "two" {
		t.Errorf("content = %q, want two", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d files, want 1 (no temp files left behind)", len(entries))
	}
}

func TestDownloadStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := Download{Dir: dir}.Save(context.Background(), "../../escape.json", []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("saved outside downloads: %s", path)
	}
	if _, err := (Download{Dir: dir}).Save(context.Background(), "  ", nil); err == nil {
		t.Error("expected error for blank name")
	}
}

func TestPromptErrMapsToCancelled(t *testing.T) {
	for _, err := range []error{promptui.ErrInterrupt, promptui.ErrEOF, promptui.ErrAbort} {
		if got := PromptError(err); !errors.Is(got, ErrCancelled) {
			t.Errorf("PromptError(%v) = %v, want ErrCancelled", err, got)
		}
	}
	if PromptError(nil) != nil {
		t.Error("PromptError(nil) != nil")
	}
	if got := PromptError(errors.New("boom")); errors.Is(got, ErrCancelled) {
		t.Error("unexpected cancel for generic error")
	}
}

func TestPickFallsBackWithoutTerminal(t *testing.T) {
	// go test never runs with a terminal on both stdin and stdout.
	d := Download{Dir: "x"}
	if _, ok := Pick(false, Dialog{}, d).(Download); !ok {
		t.Error("interactive=false must pick Download")
	}
}
