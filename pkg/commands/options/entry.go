package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/entry"
)

// EntryOptions are the entry form fields given as flags.
type EntryOptions struct {
	On    string
	Time  string
	Place string
	Note  string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().StringVar(&o.On, "on", "",
		`Date of the entry, example: --on="2025-10-28", --on="10/28/25" or --on="yesterday".`)
	cmd.Flags().StringVarP(&o.Time, "time", "t", "",
		`Time of the entry as HH:MM, example: --time="14:30".`)
	cmd.Flags().StringVarP(&o.Place, "place", "p", "",
		"Where the note was written.")
}

// Form is the entry form filled from the flags. On is resolved separately.
func (o *EntryOptions) Form() entry.Form {
	return entry.Form{Time: o.Time, Sender: o.Place, Note: o.Note}
}
