package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "osint.db", cfg.Database.Path)
	assert.Equal(t, "static/heatmap.html", cfg.Artifacts.MapPath)
	assert.Equal(t, "osint_report.pdf", cfg.Artifacts.ReportPath)
	assert.Equal(t, "chrome", cfg.Report.Converter)
	assert.Equal(t, 30*time.Second, cfg.Report.Timeout)
	assert.Equal(t, AIProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  allowedOrigins: ["http://localhost:3000"]
database:
  driver: postgres
  host: db
  port: 5432
  user: osint
  password: secret
  name: osint
report:
  converter: wkhtmltopdf
  timeout: 10s
ai:
  provider: local
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 40, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "wkhtmltopdf", cfg.Report.Converter)
	assert.Equal(t, 10*time.Second, cfg.Report.Timeout)
	assert.Equal(t, AIProviderLocal, cfg.AI.Provider)
	assert.Equal(t, "host=db port=5432 user=osint password=secret dbname=osint sslmode=disable", cfg.Database.DataSource())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"driver":    "database:\n  driver: oracle\n",
		"converter": "report:\n  converter: prince\n",
		"provider":  "ai:\n  provider: claude\n",
		"yaml":      "server: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestDataSource(t *testing.T) {
	assert.Equal(t, "osint.db", DatabaseConfig{Driver: "sqlite3", Path: "osint.db"}.DataSource())
	assert.Equal(t, "custom", DatabaseConfig{Driver: "mysql", DSN: "custom"}.DataSource())
	assert.Equal(t,
		"u:p@tcp(h:3306)/n?parseTime=true&charset=utf8mb4&loc=UTC",
		DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "h", Port: 3306, Name: "n"}.DataSource(),
	)
}
