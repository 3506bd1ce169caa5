package report

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

type stubRows struct {
	rows []domain.ReportRow
	err  error
}

func (s stubRows) ListForExport(context.Context) ([]domain.ReportRow, error) { return s.rows, s.err }

type fakeConverter struct {
	got []byte
	err error
}

func (f *fakeConverter) Convert(_ context.Context, html []byte) ([]byte, error) {
	f.got = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

var fixedNow = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC) }

func TestRenderHTMLTableAndOrder(t *testing.T) {
	src := stubRows{rows: []domain.ReportRow{
		{Type: domain.CategoryDomain, Value: "acme", Source: "Maltego"},
		{Type: domain.CategoryIP, Value: "203.0.113.5", Source: "Maltego"},
	}}
	e := NewExporter(src, &fakeConverter{}, "unused.pdf")
	e.Now = fixedNow

	html, err := e.RenderHTML(context.Background())
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, Title, doc.Find("h1").Text())
	assert.Contains(t, doc.Find("p.generated").Text(), "2026-10-18T09:30:00Z")

	headers := doc.Find("th").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Type", "Value", "Source"}, headers)

	rows := doc.Find("tr").Slice(1, goquery.ToEnd)
	require.Equal(t, 2, rows.Length())
	assert.Equal(t, "acme", rows.Eq(0).Find("td").Eq(1).Text())
	assert.Equal(t, "203.0.113.5", rows.Eq(1).Find("td").Eq(1).Text())
}

func TestRenderHTMLEscapesMarkup(t *testing.T) {
	value := `<img src=x onerror=alert(1)>`
	e := NewExporter(stubRows{rows: []domain.ReportRow{
		{Type: domain.CategoryDomain, Value: value, Source: "Google Dorks"},
	}}, &fakeConverter{}, "unused.pdf")

	html, err := e.RenderHTML(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, string(html), value)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Find("img").Length())
	assert.Equal(t, value, doc.Find("td").Eq(1).Text())
}

func TestExportWritesConvertedDocument(t *testing.T) {
	conv := &fakeConverter{}
	path := filepath.Join(t.TempDir(), "out", "osint_report.pdf")
	e := NewExporter(stubRows{}, conv, path)

	got, err := e.Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
	assert.Contains(t, string(conv.got), "<table")
}

func TestExportConverterFailure(t *testing.T) {
	boom := errors.New("renderer unavailable")
	path := filepath.Join(t.TempDir(), "osint_report.pdf")
	e := NewExporter(stubRows{}, &fakeConverter{err: boom}, path)

	_, err := e.Export(context.Background())
	assert.ErrorIs(t, err, boom)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportSourceFailure(t *testing.T) {
	boom := errors.New("db down")
	conv := &fakeConverter{}
	e := NewExporter(stubRows{err: boom}, conv, filepath.Join(t.TempDir(), "r.pdf"))

	_, err := e.Export(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, conv.got)
}

func TestWkhtmltopdfMissingBinary(t *testing.T) {
	c := &WkhtmltopdfConverter{BinaryPath: filepath.Join(t.TempDir(), "no-such-wkhtmltopdf")}
	_, err := c.Convert(context.Background(), []byte("<p>x</p>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wkhtmltopdf not available")
}

func TestNewConverter(t *testing.T) {
	c, err := NewConverter("chrome", "", time.Second)
	require.NoError(t, err)
	assert.IsType(t, &ChromeConverter{}, c)

	c, err = NewConverter("wkhtmltopdf", "/usr/local/bin/wkhtmltopdf", 0)
	require.NoError(t, err)
	assert.Equal(t, "/usr/local/bin/wkhtmltopdf", c.(*WkhtmltopdfConverter).BinaryPath)

	_, err = NewConverter("pdfkit", "", 0)
	assert.Error(t, err)
}
