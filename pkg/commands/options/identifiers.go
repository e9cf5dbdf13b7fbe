package options

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID bool
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the internal ID of each entry.")
}

// ParseIndex converts the 1-based entry number shown by list into a 0-based
// index.
func ParseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%q is not an entry number", arg)
	}
	return n - 1, nil
}
