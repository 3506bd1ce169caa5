package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
)

func (c *cli) heatmapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap",
		Short: "Regenerate the heatmap page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *bootstrap.App, _ *config.Config) error {
				if err := app.Service.RegenerateMap(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), app.Service.Map.Path())
				return nil
			})
		},
	}
}
