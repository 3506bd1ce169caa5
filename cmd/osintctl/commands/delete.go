package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one finding by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("%w: %q", domain.ErrMissingID, args[0])
			}
			return c.withApp(cmd.Context(), func(app *bootstrap.App, _ *config.Config) error {
				if err := app.Service.Delete(cmd.Context(), domain.FindingID(id)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d\n", id)
				return nil
			})
		},
	}
}
