package findings

import (
	"context"
	"errors"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
	"github.com/bryanwahyu/osintmap/internal/logger"
)

var tracer = otel.Tracer("osintmap/findings")

// Service implements the use-cases behind the HTTP boundary and the CLI.
// Artifacts is optional.
type Service struct {
	Repo      domain.Repository
	Map       domain.MapRenderer
	Reports   domain.Exporter
	Artifacts domain.ArtifactStore
	Log       *logger.Logger
}

//
// ==== USE CASES ====
//

// CollectCommand asks one simulated tool to run against query.
type CollectCommand struct {
	Query string
	Tool  string
}

// ExportResult points at the written report and its mirror, if any.
type ExportResult struct {
	Path        string
	ArtifactURL string
}

func (s *Service) log() *logger.Logger {
	if s.Log == nil {
		return logger.Nop()
	}
	return s.Log
}

// Collect runs the simulator, stores new findings and refreshes the map.
// Rows inserted before a failing insert stay committed.
func (s *Service) Collect(ctx context.Context, cmd CollectCommand) (domain.CollectResult, error) {
	if cmd.Query == "" || cmd.Tool == "" {
		return domain.CollectResult{}, domain.ErrMissingInput
	}
	tool, err := domain.ParseTool(cmd.Tool)
	if err != nil {
		return domain.CollectResult{}, err
	}

	ctx, span := tracer.Start(ctx, "findings.Collect", trace.WithAttributes(
		attribute.String("tool", string(tool)),
	))
	defer span.End()

	candidates := tool.Simulate(cmd.Query)
	res := domain.CollectResult{Requested: len(candidates)}

	for _, c := range candidates {
		exists, err := s.Repo.Exists(ctx, c.Type, c.Value, c.Source)
		if err != nil {
			return res, s.fail(span, "check duplicate", err)
		}
		if exists {
			continue
		}
		if _, err := s.Repo.Insert(ctx, c); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				// lost a race with a concurrent collect
				continue
			}
			return res, s.fail(span, "insert finding", err)
		}
		res.Inserted++
	}

	if err := s.regenerateMap(ctx); err != nil {
		return res, s.fail(span, "regenerate map", err)
	}

	span.SetAttributes(
		attribute.Int("inserted", res.Inserted),
		attribute.Int("requested", res.Requested),
	)
	s.log().WithTool(string(tool)).Infow("collection finished",
		"query", cmd.Query,
		"inserted", res.Inserted,
		"requested", res.Requested,
	)
	return res, nil
}

// List returns findings newest first.
func (s *Service) List(ctx context.Context, f domain.Filter) ([]domain.Finding, error) {
	out, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, domain.Infra("list findings", err)
	}
	return out, nil
}

// Delete removes one finding and refreshes the map.
func (s *Service) Delete(ctx context.Context, id domain.FindingID) error {
	n, err := s.Repo.DeleteByID(ctx, id)
	if err != nil {
		return domain.Infra("delete finding", err)
	}
	if err := s.regenerateMap(ctx); err != nil {
		return domain.Infra("regenerate map", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	s.log().Infow("finding deleted", "id", id)
	return nil
}

// Heatmap returns the map artifact path, generating it when absent.
func (s *Service) Heatmap(ctx context.Context) (string, error) {
	if err := s.Map.EnsureExists(ctx); err != nil {
		return "", domain.Infra("generate map", err)
	}
	return s.Map.Path(), nil
}

// RegenerateMap forces a fresh map artifact.
func (s *Service) RegenerateMap(ctx context.Context) error {
	if err := s.regenerateMap(ctx); err != nil {
		return domain.Infra("regenerate map", err)
	}
	return nil
}

// Export writes the PDF report.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	ctx, span := tracer.Start(ctx, "findings.Export")
	defer span.End()

	path, err := s.Reports.Export(ctx)
	if err != nil {
		return ExportResult{}, s.fail(span, "export report", err)
	}
	return ExportResult{Path: path, ArtifactURL: s.mirror(ctx, path, "reports")}, nil
}

// ExportHTML renders the report document without converting it.
func (s *Service) ExportHTML(ctx context.Context) ([]byte, error) {
	html, err := s.Reports.RenderHTML(ctx)
	if err != nil {
		return nil, domain.Infra("render report", err)
	}
	return html, nil
}

// Stats summarizes the store.
func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	st, err := s.Repo.Stats(ctx)
	if err != nil {
		return domain.Stats{}, domain.Infra("stats", err)
	}
	return st, nil
}

func (s *Service) regenerateMap(ctx context.Context) error {
	if err := s.Map.Regenerate(ctx); err != nil {
		return err
	}
	s.mirror(ctx, s.Map.Path(), "maps")
	return nil
}

// mirror uploads an artifact when a store is configured. Failures are logged only.
func (s *Service) mirror(ctx context.Context, path, dir string) string {
	if s.Artifacts == nil {
		return ""
	}
	key := dir + "/" + filepath.Base(path)
	url, err := s.Artifacts.Upload(ctx, path, key)
	if err != nil {
		s.log().Warnw("artifact upload failed", "path", path, "key", key, "error", err)
		return ""
	}
	return url
}

func (s *Service) fail(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	return domain.Infra(op, err)
}
