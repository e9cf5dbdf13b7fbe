package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/notd/pkg/diary"
	"tableflip.dev/notd/pkg/entry"
)

// NoteWidth is the column the note text is wrapped at.
const NoteWidth = 50

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Entries prints items as a table. The number column is one-based, matching
// what edit and delete accept.
func (pp *PrettyPrint) Entries(items ...diary.Item) {
	if len(items) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	num := color.New(color.FgHiYellow, color.Faint)
	place := color.New(color.FgCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{bold.Sprint("#"), bold.Sprint("Date"), bold.Sprint("Time"), bold.Sprint("Place"), bold.Sprint("Note")}
	if pp.ShowID {
		header = append(header, bold.Sprint("ID"))
	}
	tbl.AddRow(header...)

	for _, it := range items {
		row := []interface{}{
			num.Sprint(strconv.Itoa(it.Index + 1)),
			it.Entry.Timestamp,
			it.Entry.Time,
			place.Sprint(it.Entry.Sender),
			Wrap(it.Entry.Note, NoteWidth),
		}
		if pp.ShowID {
			row = append(row, it.ID)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Entry prints a single entry on one line.
func (pp *PrettyPrint) Entry(index int, e entry.Entry) {
	num := color.New(color.FgHiYellow, color.Faint)
	place := color.New(color.FgCyan)
	_, _ = num.Fprintf(pp.out(), "%3d  ", index+1)
	_, _ = fmt.Fprintf(pp.out(), "%s %s  ", e.Timestamp, e.Time)
	_, _ = place.Fprint(pp.out(), e.Sender)
	_, _ = fmt.Fprintf(pp.out(), ": %s\n", e.Note)
}

// Status prints the footer line: file name, last saved marker and size.
func (pp *PrettyPrint) Status(fileName string, lastSaved entry.Stamp, count int) {
	f := color.New(color.Faint)
	_, _ = f.Fprintln(pp.out(), StatusLine(fileName, lastSaved, count))
}

// StatusLine is the plain text of the footer.
func StatusLine(fileName string, lastSaved entry.Stamp, count int) string {
	parts := make([]string, 0, 3)
	if fileName == "" {
		parts = append(parts, "no file")
	} else {
		parts = append(parts, fileName)
	}
	if !lastSaved.IsZero() {
		parts = append(parts, "saved "+lastSaved.Display())
	} else {
		parts = append(parts, "not saved")
	}
	switch count {
	case 1:
		parts = append(parts, "1 entry")
	default:
		parts = append(parts, fmt.Sprintf("%d entries", count))
	}
	return strings.Join(parts, "  ·  ")
}

// JSON writes v as indented JSON.
func (pp *PrettyPrint) JSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(pp.out(), string(b))
	return err
}

// Wrap breaks s into lines no wider than width.
func Wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
