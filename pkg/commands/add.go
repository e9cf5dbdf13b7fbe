package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	io := &options.InteractiveOptions{}
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "add [note]",
		Aliases: []string{"enter"},
		Short:   "Add an entry",
		Example: `
notd add --place "Coffee Shop" had a latte
notd add -p Home --on yesterday --time 21:15 finished the book
notd add -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			eo.Note = strings.Join(args, " ")
			if !io.Interactive && strings.TrimSpace(eo.Note) == "" {
				return errors.New("requires a note")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := add.Add{
				Store:       s.diary,
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
	options.InteractiveArgs(cmd, io)
	_ = cmd.RegisterFlagCompletionFunc("place", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return placeCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
