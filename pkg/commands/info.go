package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"tableflip.dev/notd/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &base.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the diary is stored.",
		Example: `
notd info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := openSession()
			if err != nil {
				return oo.HandleError(err)
			}
			r := info.Info{
				Config:    s.cfg,
				Local:     s.local,
				Store:     s.diary,
				MirrorErr: s.mirrorErr,
				Out:       cmd.OutOrStdout(),
				JSON:      oo.JSON,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
