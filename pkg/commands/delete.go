package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	io := &options.InteractiveOptions{}
	oo := &base.OutputOptions{}
	index := -1

	cmd := &cobra.Command{
		Use:     "delete [n]",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Long: `Delete removes entry n, as numbered by list. Later entries move up by
one, so run list again before deleting another.`,
		Example: `
notd delete 2
notd rm -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				if !io.Interactive {
					return errors.New("requires an entry number")
				}
				return nil
			case 1:
				n, err := options.ParseIndex(args[0])
				if err != nil {
					return err
				}
				index = n
				return nil
			default:
				return errors.New("accepts a single entry number")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := remove.Remove{
				Store:       s.diary,
				Index:       index,
				Interactive: io.Interactive,
				Prompt:      promptIO(cmd),
				Out:         cmd.OutOrStdout(),
				JSON:        oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&io.Interactive, "interactive", "i", false,
		"Pick the entry from a list.")
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
