package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

func (c *cli) toolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the simulated tools",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range domain.Tools() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", t, t.SourceName())
			}
		},
	}
}
