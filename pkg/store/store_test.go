package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"tableflip.dev/notd/pkg/entry"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string  { return t.path }
func (t testConfig) Downloads() string { return "" }
func (t testConfig) Interactive() bool { return false }

func TestLocalGetSetRemove(t *testing.T) {
	l, err := Load(testConfig{path: filepath.Join(t.TempDir(), "mirror")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, ok, err := l.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v; want absent", ok, err)
	}
	if err := l.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := l.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, ok, err := l.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get(k) = %q, %v, %v; want v2", v, ok, err)
	}
	if err := l.Set("empty", ""); err != nil {
		t.Fatalf("Set empty: %v", err)
	}
	if v, ok, _ := l.Get("empty"); !ok || v != "" {
		t.Fatalf("Get(empty) = %q, %v; want present and blank", v, ok)
	}
	if err := l.Remove("k"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := l.Remove("k"); err != nil {
		t.Fatalf("Remove twice: %v", err)
	}
	if _, ok, _ := l.Get("k"); ok {
		t.Fatal("Get after Remove found the key")
	}
}

func TestLocalSurvivesReopen(t *testing.T) {
	cfg := testConfig{path: t.TempDir()}
	first, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	state := State{
		Entries:   []entry.Entry{{Timestamp: "10/28/25", Time: "14:30", Sender: "Coffee Shop", Note: "Had a latte"}},
		FileName:  "diary.json",
		LastSaved: "10-28-14-31",
	}
	if err := NewMirror(first).Write(state); err != nil {
		t.Fatalf("Write: %v", err)
	}

	second, err := Load(cfg)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := NewMirror(second).Read()
	if err != nil || !ok {
		t.Fatalf("Read = %v, %v", ok, err)
	}
	if !reflect.DeepEqual(got, state) {
		t.Fatalf("Read = %#v, want %#v", got, state)
	}
}

func TestMirrorStampRemovedWhenZero(t *testing.T) {
	kv := NewMemory()
	m := NewMirror(kv)
	if err := m.Write(State{FileName: "a.json", LastSaved: "01-01-09-00"}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get(KeyStamp); !ok {
		t.Fatal("stamp key missing after write")
	}
	if err := m.Write(State{FileName: "b.json"}); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get(KeyStamp); ok {
		t.Fatal("stale stamp key survived a write without a marker")
	}
	if v, _, _ := kv.Get(KeyEntries); v != "[]" {
		t.Fatalf("entries key = %q, want []", v)
	}
}

func TestMirrorReadFirstRunAndCorrupt(t *testing.T) {
	kv := NewMemory()
	m := NewMirror(kv)
	if _, ok, err := m.Read(); ok || err != nil {
		t.Fatalf("Read on empty = %v, %v; want not ok, nil", ok, err)
	}
	_ = kv.Set(KeyEntries, "{not an array")
	if _, ok, err := m.Read(); ok || !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Read corrupt = %v, %v; want ErrCorrupt", ok, err)
	}
}

func TestMirrorClear(t *testing.T) {
	kv := NewMemory()
	m := NewMirror(kv)
	_ = m.Write(State{FileName: "a.json", LastSaved: "01-01-09-00"})
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	for _, k := range []string{KeyEntries, KeyFileName, KeyStamp} {
		if _, ok, _ := kv.Get(k); ok {
			t.Fatalf("Clear left %s", k)
		}
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("NOTD_CONFIG_PATH", dir)
	t.Setenv("NOTD_PATH", filepath.Join(dir, "db"))
	t.Setenv("NOTD_INTERACTIVE", "false")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.BasePath() != filepath.Join(dir, "db") {
		t.Fatalf("BasePath = %q", cfg.BasePath())
	}
	if cfg.Interactive() {
		t.Fatal("Interactive = true, want false from env")
	}
}

func TestWatchReportsWrites(t *testing.T) {
	l, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := l.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}

	// Give the watcher a moment to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := l.Set(KeyEntries, "[]"); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Key == KeyEntries {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestLocalKeysAndStat(t *testing.T) {
	l, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewMirror(l).Write(State{FileName: "a.json"}); err != nil {
		t.Fatal(err)
	}

	keys := l.Keys()
	sort.Strings(keys)
	if want := []string{KeyEntries, KeyFileName}; !reflect.DeepEqual(keys, want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	info, err := l.Stat(KeyFileName)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != int64(len("a.json")) {
		t.Errorf("size = %d", info.Size())
	}
}
