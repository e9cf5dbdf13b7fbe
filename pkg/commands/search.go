package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	ido := &options.IDOptions{}
	oo := &base.OutputOptions{}
	var query string

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find entries containing some text",
		Long: `Search matches the text, ignoring case, against the date, place, time
and note of every entry.`,
		Example: `
notd search latte
notd search "coffee shop" --json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			query = strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				return errors.New("requires search text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := search.Search{
				Store:  s.diary,
				Query:  query,
				ShowID: ido.ShowID,
				Out:    cmd.OutOrStdout(),
				JSON:   oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, ido)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
