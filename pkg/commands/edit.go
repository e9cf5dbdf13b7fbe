package commands

import (
	"errors"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.InteractiveOptions{}
	oo := &base.OutputOptions{}
	index := -1

	cmd := &cobra.Command{
		Use:   "edit [n]",
		Short: "Change an entry",
		Long: `Edit replaces fields of entry n, as numbered by list. Flags that are
not given keep their current value. With -i the entry form opens pre-filled,
and without n you pick the entry from a list.`,
		Example: `
notd edit 3 --note "had two lattes"
notd edit 3 --on 2025-10-27 --time 09:15
notd edit -i
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
			r := edit.Edit{
				Store:       s.diary,
				Index:       index,
				Form:        eo.Form(),
				On:          eo.On,
				Interactive: io.Interactive,
				Prompt:      promptIO(cmd),
				Out:         cmd.OutOrStdout(),
				JSON:        oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	cmd.Flags().StringVarP(&eo.Note, "note", "n", "", "New note text.")
	options.InteractiveArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("place", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return placeCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
