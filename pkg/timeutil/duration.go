// Package timeutil parses the look-back windows used to narrow listings,
// such as "3d" or "1w2d".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const day = 24 * time.Hour

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	units   = map[string]time.Duration{
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": 7 * day, "wk": 7 * day, "week": 7 * day, "weeks": 7 * day,
	}
)

// Window is a look-back period ending now.
type Window struct {
	d time.Duration
}

// ParseWindow reads windows like "90m", "3d" or "1w2d6h". The empty string
// is the zero Window, which contains every time.
func ParseWindow(input string) (Window, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return Window{}, fmt.Errorf("timeutil: invalid window %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return Window{}, fmt.Errorf("timeutil: invalid window %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return Window{}, fmt.Errorf("timeutil: unknown unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	if input != "" && total <= 0 {
		return Window{}, fmt.Errorf("timeutil: window %q is empty", input)
	}
	return Window{d: total}, nil
}

// IsZero reports whether w is unbounded.
func (w Window) IsZero() bool {
	return w.d <= 0
}

// Duration is the length of w.
func (w Window) Duration() time.Duration {
	return w.d
}

// Start is the earliest time inside w. Windows of whole days start at
// midnight so that "1d" covers yesterday and today.
func (w Window) Start(now time.Time) time.Time {
	start := now.Add(-w.d)
	if w.d%day == 0 {
		y, m, d := start.Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	}
	return start
}

// Contains reports whether t falls inside w as seen from now.
func (w Window) Contains(t, now time.Time) bool {
	if w.IsZero() {
		return true
	}
	return !t.Before(w.Start(now)) && !t.After(now)
}

// String renders w compactly, largest unit first.
func (w Window) String() string {
	if w.IsZero() {
		return "all"
	}
	var b strings.Builder
	rest := w.d
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", 7 * day}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}} {
		if n := rest / u.size; n > 0 {
			fmt.Fprintf(&b, "%d%s", n, u.label)
			rest -= n * u.size
		}
	}
	if b.Len() == 0 {
		return w.d.String()
	}
	return b.String()
}
