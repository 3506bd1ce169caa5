package report

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

const Title = "OSINT Findings Report"

//go:embed report.html.tmpl
var reportTemplate string

var tmpl = template.Must(template.New("report").Parse(reportTemplate))

// Converter turns an HTML document into PDF bytes.
type Converter interface {
	Convert(ctx context.Context, html []byte) ([]byte, error)
}

// Exporter renders all findings into a PDF at a fixed path.
type Exporter struct {
	source    domain.ReportSource
	converter Converter
	path      string

	// Now stamps the report; defaults to time.Now.
	Now func() time.Time
}

func NewExporter(source domain.ReportSource, converter Converter, path string) *Exporter {
	return &Exporter{source: source, converter: converter, path: path, Now: time.Now}
}

func (e *Exporter) Path() string { return e.path }

// RenderHTML builds the report document. Values are escaped by html/template.
func (e *Exporter) RenderHTML(ctx context.Context) ([]byte, error) {
	rows, err := e.source.ListForExport(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Title       string
		GeneratedAt string
		Rows        []domain.ReportRow
	}{
		Title:       Title,
		GeneratedAt: e.Now().UTC().Format(time.RFC3339),
		Rows:        rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// Export renders, converts and writes the PDF, returning its path.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	html, err := e.RenderHTML(ctx)
	if err != nil {
		return "", err
	}
	pdf, err := e.converter.Convert(ctx, html)
	if err != nil {
		return "", fmt.Errorf("convert report: %w", err)
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(e.path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return e.path, nil
}
