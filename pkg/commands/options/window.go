package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Since string
}

func AddSinceArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Only entries from this far back, example: --since=3d or --since=1w2d.`)
}

// Window parses Since. An empty flag is the unbounded window.
func (o *WindowOptions) Window() (timeutil.Window, error) {
	return timeutil.ParseWindow(o.Since)
}
