package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	wo := &options.WindowOptions{}
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List every entry",
		Example: `
notd list
notd ls --json
notd list --since 1w
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			since, err := wo.Window()
			if err != nil {
				return oo.HandleError(err)
			}
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := list.List{
				Store:  s.diary,
				ShowID: ido.ShowID,
				Since:  since,
				Out:    cmd.OutOrStdout(),
				JSON:   oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	options.AddSinceArgs(cmd, wo)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
