// Package prompt holds the interactive promptui flows: filling in the entry
// form and picking an entry from the list.
package prompt

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
	"tableflip.dev/notd/pkg/files"
)

// IO is where prompts read and draw.
type IO struct {
	In  io.Reader
	Out io.Writer
}

func (p IO) stdin() io.ReadCloser {
	if p.In == nil {
		return nil
	}
	return io.NopCloser(p.In)
}

func (p IO) stdout() io.WriteCloser {
	if p.Out == nil {
		return nil
	}
	return nopWriteCloser{p.Out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

var formTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("required")
	}
	return nil
}

// Form asks for every field of f. Current values are offered as defaults;
// blank date and time default to now.
func (p IO) Form(f *entry.Form, now time.Time) error {
	f.Defaults(now)
	givenDate, givenTime := f.Timestamp, f.Time

	steps := []struct {
		label    string
		value    *string
		validate promptui.ValidateFunc
	}{
		{"Date", &f.Timestamp, keepOr(givenDate, func(s string) error {
			_, err := entry.ParseOn(s, now)
			return err
		})},
		{"Time", &f.Time, keepOr(givenTime, func(s string) error {
			_, err := entry.ParseClock(s)
			return err
		})},
		{"Place", &f.Sender, required},
		{"Note", &f.Note, required},
	}

	for _, s := range steps {
		pr := promptui.Prompt{
			Label:     s.label,
			Default:   *s.value,
			AllowEdit: true,
			Validate:  s.validate,
			Templates: formTemplates,
			Stdin:     p.stdin(),
			Stdout:    p.stdout(),
		}
		v, err := pr.Run()
		if err != nil {
			return files.PromptError(err)
		}
		*s.value = v
	}

	date, err := resolveDate(givenDate, f.Timestamp, now)
	if err != nil {
		return err
	}
	f.Timestamp = date
	return nil
}

// keepOr accepts the value the field started with unchanged, so entries
// with free text dates or times can be edited without retyping them, and
// runs check on anything else.
func keepOr(given string, check promptui.ValidateFunc) promptui.ValidateFunc {
	return func(s string) error {
		if unchanged(given, s) {
			return nil
		}
		return check(s)
	}
}

func unchanged(given, v string) bool {
	return strings.TrimSpace(given) != "" && strings.TrimSpace(v) == strings.TrimSpace(given)
}

// resolveDate normalizes an edited date and leaves an untouched one alone.
func resolveDate(given, v string, now time.Time) (string, error) {
	if unchanged(given, v) {
		return v, nil
	}
	return entry.ParseOn(v, now)
}

// Select lets the user pick one of items and returns its index in items.
func (p IO) Select(label string, items []diary.Item) (int, error) {
	if len(items) == 0 {
		return -1, errors.New("prompt: nothing to choose from")
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Entry.Timestamp }} {{ .Entry.Time }}  {{ .Entry.Sender | cyan }}: {{ .Entry.Note | bold }}",
		Inactive: "   {{ .Entry.Timestamp }} {{ .Entry.Time }}  {{ .Entry.Sender | cyan }}: {{ .Entry.Note }}",
		Selected: "➜  {{ .Entry.Sender | bold }}: {{ .Entry.Note }}",
	}

	searcher := func(input string, index int) bool {
		return items[index].Entry.Matches(input)
	}

	sel := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     items,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.stdin(),
		Stdout:    p.stdout(),
	}
	i, _, err := sel.Run()
	if err != nil {
		return -1, files.PromptError(err)
	}
	return i, nil
}
