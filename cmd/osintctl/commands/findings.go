package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

func (c *cli) findingsCmd() *cobra.Command {
	var (
		f      domain.Filter
		typ    string
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "findings",
		Short: "List stored findings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Type = domain.Category(typ)
			return c.withApp(cmd.Context(), func(app *bootstrap.App, _ *config.Config) error {
				list, err := app.Service.List(cmd.Context(), f)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if asJSON {
					if list == nil {
						list = []domain.Finding{}
					}
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					return enc.Encode(list)
				}

				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tTYPE\tVALUE\tSOURCE\tLAT\tLON")
				for _, it := range list {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
						it.ID, it.Type, it.Value, it.Source, fmtCoord(it.Lat), fmtCoord(it.Lon))
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&typ, "type", "", "filter by type (IP, Email, Domain)")
	cmd.Flags().StringVar(&f.Source, "source", "", "filter by source")
	cmd.Flags().StringVar(&f.Search, "q", "", "substring of value")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func fmtCoord(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
