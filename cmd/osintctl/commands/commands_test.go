package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

type harness struct {
	dir string
}

func newHarness(t *testing.T) *harness {
	return &harness{dir: t.TempDir()}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	base := []string{
		"--config", filepath.Join(h.dir, "missing.yaml"),
		"--db", filepath.Join(h.dir, "osint.db"),
		"--map", filepath.Join(h.dir, "static", "heatmap.html"),
		"--log-level", "error",
	}
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, base...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCollectListDelete(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "collect", "--tool", "maltego", "--query", "acme.test")
	require.NoError(t, err)
	assert.Equal(t, "inserted 3 of 3\n", out)

	out, err = h.run(t, "collect", "--tool", "maltego", "--query", "acme.test")
	require.NoError(t, err)
	assert.Equal(t, "inserted 0 of 3\n", out)

	out, err = h.run(t, "findings", "--json")
	require.NoError(t, err)
	var list []domain.Finding
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 3)

	out, err = h.run(t, "findings", "--type", "IP")
	require.NoError(t, err)
	assert.Contains(t, out, "203.0.113.5")
	assert.NotContains(t, out, "contact@acme.test")

	_, err = h.run(t, "delete", "9999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err = h.run(t, "delete", fmt.Sprint(list[0].ID))
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	out, err = h.run(t, "findings", "--json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 2)
}

func TestCollectRejectsUnknownTool(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "collect", "--tool", "nmap", "--query", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidTool)

	_, err = h.run(t, "collect", "--tool", "shodan")
	assert.ErrorIs(t, err, domain.ErrMissingInput)
}

func TestDeleteRejectsNonNumericID(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "delete", "abc")
	assert.ErrorIs(t, err, domain.ErrMissingID)
}

func TestHeatmapAndExportHTML(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(t, "collect", "--tool", "shodan", "--query", "x")
	require.NoError(t, err)

	out, err := h.run(t, "heatmap")
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSpace(out))

	report := filepath.Join(h.dir, "out", "report.pdf")
	require.NoError(t, os.MkdirAll(filepath.Dir(report), 0o755))
	out, err = h.run(t, "export", "--html", "--out", report)
	require.NoError(t, err)
	htmlPath := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(h.dir, "out", "report.html"), htmlPath)
	body, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "8.8.8.8")
}

func TestToolsListsEverySimulator(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(t, "tools")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, len(domain.Tools()))
	assert.True(t, strings.HasPrefix(lines[0], "shodan"))
	assert.Contains(t, out, "Google Dorks")
}

func TestEnvOverridesDatabasePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OSINTMAP_DATABASE_PATH", filepath.Join(dir, "env.db"))
	t.Setenv("OSINTMAP_ARTIFACTS_MAPPATH", filepath.Join(dir, "map.html"))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"collect", "--tool", "googledorks", "--query", "acme",
		"--config", filepath.Join(dir, "none.yaml"), "--log-level", "error"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	assert.FileExists(t, filepath.Join(dir, "env.db"))
	assert.FileExists(t, filepath.Join(dir, "map.html"))
}
