package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bryanwahyu/osintmap/internal/bootstrap"
	"github.com/bryanwahyu/osintmap/internal/config"
	"github.com/bryanwahyu/osintmap/internal/logger"
)

// EnvPrefix namespaces environment overrides, e.g. OSINTMAP_DATABASE_PATH.
const EnvPrefix = "OSINTMAP"

// cli carries per-invocation state so commands stay testable.
type cli struct {
	v *viper.Viper
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd builds the osintctl command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	c.v.SetEnvPrefix(EnvPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "osintctl",
		Short:         "Simulated OSINT collection from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "config.yaml", "path to config.yaml")
	pf.String("driver", "", "database driver (sqlite3, mysql, postgres)")
	pf.String("db", "", "sqlite database path")
	pf.String("dsn", "", "mysql/postgres connection string")
	pf.String("map", "", "heatmap output path")
	pf.String("log-level", "warn", "log level")

	c.bind(root, "config", "config")
	c.bind(root, "database.driver", "driver")
	c.bind(root, "database.path", "db")
	c.bind(root, "database.dsn", "dsn")
	c.bind(root, "artifacts.mapPath", "map")
	c.bind(root, "logger.level", "log-level")

	root.AddCommand(
		c.collectCmd(),
		c.findingsCmd(),
		c.deleteCmd(),
		c.heatmapCmd(),
		c.exportCmd(),
		c.toolsCmd(),
	)
	return root
}

func (c *cli) bind(cmd *cobra.Command, key, flag string) {
	_ = c.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
}

// loadConfig reads the YAML file, then applies flag and env overrides.
func (c *cli) loadConfig() (*config.Config, error) {
	path := c.v.GetString("config")
	if v := os.Getenv("CONFIG_PATH"); v != "" && !c.v.IsSet("config") {
		path = v
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	override := func(key string, dst *string) {
		if v := c.v.GetString(key); v != "" {
			*dst = v
		}
	}
	override("database.driver", &cfg.Database.Driver)
	override("database.path", &cfg.Database.Path)
	override("database.dsn", &cfg.Database.DSN)
	override("artifacts.mapPath", &cfg.Artifacts.MapPath)
	override("artifacts.reportPath", &cfg.Artifacts.ReportPath)
	override("report.converter", &cfg.Report.Converter)
	override("ai.apiKey", &cfg.AI.APIKey)

	cfg.Logger.Level = c.v.GetString("logger.level")
	cfg.Logger.Format = "console"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withApp wires the service for one command and tears it down afterwards.
func (c *cli) withApp(ctx context.Context, fn func(*bootstrap.App, *config.Config) error) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	defer lg.Sync()

	app, err := bootstrap.New(ctx, cfg, lg.WithComponent("osintctl"), bootstrap.Options{})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app, cfg)
}
