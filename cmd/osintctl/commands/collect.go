package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	appfindings "github.com/bryanwahyu/osintmap/internal/application/findings"
	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
)

func (c *cli) collectCmd() *cobra.Command {
	var tool, query string
	cmd := &cobra.Command{
		Use:     "collect",
		Short:   "Run a simulated tool and store new findings",
		Example: "  osintctl collect --tool maltego --query acme.test",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *bootstrap.App, _ *config.Config) error {
				res, err := app.Service.Collect(cmd.Context(), appfindings.CollectCommand{
					Query: query,
					Tool:  tool,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d of %d\n", res.Inserted, res.Requested)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&tool, "tool", "", "tool name (see osintctl tools)")
	cmd.Flags().StringVar(&query, "query", "", "target query")
	return cmd
}
