package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
)

func (c *cli) exportCmd() *cobra.Command {
	var asHTML bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the findings report (PDF by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(app *bootstrap.App, cfg *config.Config) error {
				out := cmd.OutOrStdout()
				if asHTML {
					html, err := app.Service.ExportHTML(cmd.Context())
					if err != nil {
						return err
					}
					path := cfg.Artifacts.ReportPath
					if filepath.Ext(path) == ".pdf" {
						path = path[:len(path)-len(".pdf")] + ".html"
					}
					if err := os.WriteFile(path, html, 0o644); err != nil {
						return err
					}
					fmt.Fprintln(out, path)
					return nil
				}

				res, err := app.Service.Export(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, res.Path)
				if res.ArtifactURL != "" {
					fmt.Fprintln(out, res.ArtifactURL)
				}
				return nil
			})
		},
	}
	cmd.Flags().String("out", "", "report output path")
	cmd.Flags().BoolVar(&asHTML, "html", false, "write the HTML document instead of converting to PDF")
	_ = c.v.BindPFlag("artifacts.reportPath", cmd.Flags().Lookup("out"))
	return cmd
}
