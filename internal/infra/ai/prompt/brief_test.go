package prompt

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/osintmap/internal/domain/findings"
)

func f(typ findings.Category, value, source string) findings.Finding {
	return findings.Finding{Type: typ, Value: value, Source: source}
}

func TestParseBrief(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{"plain", `{"summary":"ok","highlights":["a"]}`, "ok", false},
		{"fenced", "```json\n{\"summary\":\"fenced\"}\n```", "fenced", false},
		{"garbage", "not json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBrief(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Summary)
			assert.NotNil(t, b.Highlights)
		})
	}
}

func TestGetUserPromptCapsItems(t *testing.T) {
	items := make([]findings.Finding, MaxItems+50)
	for i := range items {
		items[i] = f(findings.CategoryDomain, fmt.Sprintf("d%d.example", i), "Google Dorks")
	}
	p := GetUserPrompt(items)
	assert.Contains(t, p, fmt.Sprintf("these %d OSINT findings", MaxItems))
	assert.Contains(t, p, `"d0.example"`)
	assert.NotContains(t, p, fmt.Sprintf(`"d%d.example"`, MaxItems))
}

func TestLocalAnalyst(t *testing.T) {
	lat, lon := 35.6895, 139.6917
	items := []findings.Finding{
		f(findings.CategoryIP, "192.168.1.1", "Shodan"),
		f(findings.CategoryIP, "8.8.8.8", "Shodan"),
		{Type: findings.CategoryIP, Value: "203.0.113.5", Source: "Maltego", Lat: &lat, Lon: &lon},
		f(findings.CategoryEmail, "contact@acme", "Maltego"),
		f(findings.CategoryEmail, "admin@acme", "theHarvester"),
		f(findings.CategoryDomain, "acme", "Maltego"),
	}

	b, err := LocalAnalyst{}.Brief(context.Background(), items)
	require.NoError(t, err)
	assert.Equal(t, "local", b.Model)
	assert.Equal(t, 6, b.Findings)
	assert.Contains(t, b.Summary, "6 findings from 3 sources")
	assert.Contains(t, b.Summary, "1 geolocated")

	joined := strings.Join(b.Highlights, "\n")
	assert.Contains(t, joined, "192.168.1.1 is a private address")
	assert.Contains(t, joined, "203.0.113.5 is in a documentation range")
	assert.Contains(t, joined, "2 addresses share the mail domain acme")
	assert.NotContains(t, joined, "8.8.8.8")
}

func TestLocalAnalystEmpty(t *testing.T) {
	b, err := LocalAnalyst{}.Brief(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "No findings collected yet.", b.Summary)
	assert.Empty(t, b.Highlights)
}
