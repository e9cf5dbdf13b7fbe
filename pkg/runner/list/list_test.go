package list

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/timeutil"
)

func seeded(t *testing.T) *diary.Store {
	t.Helper()
	s := diary.New(diary.WithLogger(func(string, ...any) {}))
	for _, e := range []entry.Entry{
		{Timestamp: "10/20/25", Time: "08:00", Sender: "Home", Note: "old news"},
		{Timestamp: "someday", Time: "09:00", Sender: "Park", Note: "undated"},
		{Timestamp: "10/27/25", Time: "21:15", Sender: "Home", Note: "finished the book"},
		{Timestamp: "10/28/25", Time: "14:30", Sender: "Coffee Shop", Note: "had a latte"},
	} {
		s.SaveEntry(e)
	}
	return s
}

func TestListSinceKeepsIndices(t *testing.T) {
	now := time.Date(2025, 10, 28, 15, 0, 0, 0, time.UTC)
	w, err := timeutil.ParseWindow("1d")
	if err != nil {
		t.Fatal(err)
	}

	out := new(bytes.Buffer)
	r := List{Store: seeded(t), Since: w, Now: func() time.Time { return now }, Out: out, JSON: true}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}

	var l Listing
	if err := json.Unmarshal(out.Bytes(), &l); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if l.Since != "1d" {
		t.Errorf("since = %q", l.Since)
	}
	if len(l.Entries) != 2 || l.Entries[0].Index != 2 || l.Entries[1].Index != 3 {
		t.Fatalf("unexpected entries: %+v", l.Entries)
	}
}

func TestListPretty(t *testing.T) {
	out := new(bytes.Buffer)
	r := List{Store: seeded(t), Out: out}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	for _, want := range []string{"Diary", "had a latte", "undated", "4 entries"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
