package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
notd ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			// The list view owns the terminal, so saves skip the prompt.
			i := ui.UI{Store: s.diary, Local: s.local, Saver: s.download()}
			return i.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
