package timeutil

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		str  string
	}{
		{"", 0, "all"},
		{"3d", 72 * time.Hour, "3d"},
		{"1w2d6h30m", (7*24+2*24+6)*time.Hour + 30*time.Minute, "1w2d6h30m"},
		{" 2 Weeks ", 14 * 24 * time.Hour, "2w"},
		{"90m", 90 * time.Minute, "1h30m"},
	}
	for _, tt := range tests {
		w, err := ParseWindow(tt.in)
		if err != nil {
			t.Errorf("ParseWindow(%q): %v", tt.in, err)
			continue
		}
		if w.Duration() != tt.want {
			t.Errorf("ParseWindow(%q) = %v, want %v", tt.in, w.Duration(), tt.want)
		}
		if w.String() != tt.str {
			t.Errorf("ParseWindow(%q).String() = %q, want %q", tt.in, w.String(), tt.str)
		}
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3y", "0d", "5"} {
		if _, err := ParseWindow(in); err == nil {
			t.Errorf("ParseWindow(%q): expected error", in)
		}
	}
}

func TestWindowContains(t *testing.T) {
	now := time.Date(2025, 10, 28, 14, 30, 0, 0, time.UTC)
	w, err := ParseWindow("1d")
	if err != nil {
		t.Fatal(err)
	}
	for _, tt := range []struct {
		at   time.Time
		want bool
	}{
		{time.Date(2025, 10, 27, 0, 5, 0, 0, time.UTC), true},
		{time.Date(2025, 10, 26, 23, 59, 0, 0, time.UTC), false},
		{time.Date(2025, 10, 28, 15, 0, 0, 0, time.UTC), false},
	} {
		if got := w.Contains(tt.at, now); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}
	if !(Window{}).Contains(time.Time{}, now) {
		t.Error("zero window should contain everything")
	}
}
