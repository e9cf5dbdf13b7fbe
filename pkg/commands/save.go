package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/files"
	"tableflip.dev/notd/pkg/runner/save"
)

func addSave(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}
	var dir string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Export the diary to a JSON file",
		Long: `Save writes the diary to a JSON file. In a terminal you are asked where
to save it; otherwise, or with --to, the file goes into a directory without
asking. The name defaults to the loaded file, or diary-entries-<date>.json.`,
		Example: `
notd save
notd save --to ~/backups
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			saver := s.saver()
			if dir != "" {
				saver = files.Download{Dir: dir}
			}
			r := save.Save{
				Store: s.diary,
				Saver: saver,
				Out:   cmd.OutOrStdout(),
				JSON:  oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&dir, "to", "", "Write into this directory without asking.")
	_ = cmd.MarkFlagDirname("to")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
