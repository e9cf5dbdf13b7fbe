package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/load"
)

func addLoad(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Replace the diary with a saved JSON file",
		Long: `Load reads a diary file written by save (or a bare JSON array of entries)
and makes it the current diary. Later saves go to a file of the same name.`,
		Example: `
notd load ~/Downloads/diary-entries-2025-10-28.json
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := load.Load{
				Store: s.diary,
				Path:  args[0],
				Out:   cmd.OutOrStdout(),
				JSON:  oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
