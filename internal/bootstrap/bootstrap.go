// Package bootstrap wires the findings service from configuration. Both the
// HTTP server and osintctl build their dependencies through it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bryanwahyu/osintmap/internal/application"
	appai "github.com/bryanwahyu/osintmap/internal/application/ai"
	appfindings "github.com/bryanwahyu/osintmap/internal/application/findings"
	"github.com/bryanwahyu/osintmap/internal/config"
	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	openaicli "github.com/bryanwahyu/osintmap/internal/infra/ai/openai"
	"github.com/bryanwahyu/osintmap/internal/infra/ai/prompt"
	"github.com/bryanwahyu/osintmap/internal/infra/db"
	"github.com/bryanwahyu/osintmap/internal/infra/heatmap"
	"github.com/bryanwahyu/osintmap/internal/infra/report"
	"github.com/bryanwahyu/osintmap/internal/infra/storage"
	"github.com/bryanwahyu/osintmap/internal/logger"
)

// App holds the wired service and the handles that need closing.
type App struct {
	Service  *appfindings.Service
	Analysis *appai.Service
	DB       *sqlx.DB
	Repo     *db.FindingRepository
}

func (a *App) Close() error {
	return a.DB.Close()
}

// Options tweaks wiring for callers that override config values.
type Options struct {
	Clock application.Clock
}

// New connects the store, ensures the schema and assembles the service.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	conn, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("%s connect: %w", cfg.Database.Driver, err)
	}
	repo := db.NewFindingRepository(conn)
	if err := repo.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	converter, err := report.NewConverter(cfg.Report.Converter, cfg.Report.BinaryPath, cfg.Report.Timeout)
	if err != nil {
		conn.Close()
		return nil, err
	}
	exporter := report.NewExporter(repo, converter, cfg.Artifacts.ReportPath)
	clock := opts.Clock
	if clock == nil {
		clock = application.SystemClock{}
	}
	exporter.Now = clock.Now

	svc := &appfindings.Service{
		Repo:    repo,
		Map:     heatmap.NewRenderer(repo, cfg.Artifacts.MapPath),
		Reports: exporter,
		Log:     log,
	}

	if cfg.Minio.Enabled {
		store, err := storage.New(ctx, storage.Options{
			Endpoint:  cfg.Minio.Endpoint,
			Region:    cfg.Minio.Region,
			Bucket:    cfg.Minio.BucketName,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("minio init: %w", err)
		}
		svc.Artifacts = store
	}

	analysis := appai.NewService(newAnalyst(cfg, log), db.NewBriefRepository(conn), svc, log)
	analysis.Clock = clock

	return &App{Service: svc, Analysis: analysis, DB: conn, Repo: repo}, nil
}

func newAnalyst(cfg *config.Config, log *logger.Logger) ai.Client {
	switch cfg.AI.Provider {
	case config.AIProviderNone:
		return nil
	case config.AIProviderLocal:
		return prompt.LocalAnalyst{}
	}
	if cfg.AI.APIKey == "" {
		log.Infow("no ai api key configured, using local analyst")
		return prompt.LocalAnalyst{}
	}
	return openaicli.NewClient(cfg.AI.APIKey, cfg.AI.Model)
}
