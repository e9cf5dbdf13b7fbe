package printers

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// KeyInfo describes one mirrored key on disk.
type KeyInfo struct {
	Key      string
	Size     int64
	Modified time.Time
}

// Setting is a named configuration value.
type Setting struct {
	Name  string
	Value string
}

// Settings prints name/value pairs aligned.
func (pp *PrettyPrint) Settings(settings ...Setting) {
	tbl := uitable.New()
	tbl.Separator = "  "
	faint := color.New(color.Faint)
	for _, s := range settings {
		tbl.AddRow(faint.Sprint(s.Name), s.Value)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Keys prints the mirrored keys with human sizes and ages.
func (pp *PrettyPrint) Keys(now time.Time, keys ...KeyInfo) {
	if len(keys) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " nothing stored\n")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Size"), bold.Sprint("Modified"))
	for _, k := range keys {
		tbl.AddRow(k.Key, humanize.Bytes(uint64(k.Size)), humanize.RelTime(k.Modified, now, "ago", "from now"))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
