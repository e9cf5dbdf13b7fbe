package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
)

func TestEntriesTable(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Entries(
		diary.Item{Index: 0, Entry: entry.Entry{Timestamp: "10/28/25", Time: "14:30", Sender: "Coffee Shop", Note: "Had a latte"}},
		diary.Item{Index: 1, Entry: entry.Entry{Timestamp: "10/29/25", Time: "08:00", Sender: "Home", Note: "toast"}},
	)
	out := buf.String()
	for _, want := range []string{"#", "Place", "Coffee Shop", "Had a latte", "10/29/25", "2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	pp.Entries()
	if !strings.Contains(buf.String(), "none") {
		t.Errorf("got %q", buf.String())
	}
}

func TestStatusLine(t *testing.T) {
	tests := []struct {
		file  string
		stamp entry.Stamp
		count int
		want  string
	}{
		{"", "", 0, "no file  ·  not saved  ·  0 entries"},
		{"june.json", "06-01-08-05", 1, "june.json  ·  saved 06.01::08:05  ·  1 entry"},
	}
	for _, tt := range tests {
		if got := StatusLine(tt.file, tt.stamp, tt.count); got != tt.want {
			t.Errorf("StatusLine(%q, %q, %d) = %q, want %q", tt.file, tt.stamp, tt.count, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("one two three four", 9)
	if got != "one two\nthree\nfour" {
		t.Errorf("Wrap = %q", got)
	}
	if Wrap("keep", 0) != "keep" {
		t.Error("width 0 must not wrap")
	}
}

func TestKeys(t *testing.T) {
	var buf bytes.Buffer
	pp := PrettyPrint{Out: &buf}
	now := time.Date(2025, 10, 28, 12, 0, 0, 0, time.UTC)
	pp.Keys(now, KeyInfo{Key: "diary_entries", Size: 2048, Modified: now.Add(-time.Hour)})
	out := buf.String()
	if !strings.Contains(out, "diary_entries") || !strings.Contains(out, "2.0 kB") || !strings.Contains(out, "1 hour ago") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
