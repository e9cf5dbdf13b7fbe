package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/notd/pkg/runner/unload"
)

func addUnload(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "unload",
		Short: "Forget the current diary and clear local storage",
		Long: `Unload empties the diary and removes it from local storage. Files saved
earlier are not touched.`,
		Example: `
notd save && notd unload
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return err
			}
			r := unload.Unload{Store: s.diary, Out: cmd.OutOrStdout()}
			return r.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
