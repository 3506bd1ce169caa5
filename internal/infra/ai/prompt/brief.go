package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	"github.com/bryanwahyu/osintmap/internal/domain/findings"
)

// MaxItems caps how many findings are sent to the model.
const MaxItems = 200

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are an OSINT analyst. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- summary is at most three sentences describing the exposure the findings suggest.
- highlights is an array of short strings, each pointing at one finding or pattern worth a closer look.
- Only reason about the findings given; do not invent new artifacts.

Schema (example with empty values):
{
  "summary": "<string>",
  "highlights": ["<string>"]
}`
}

type item struct {
	Type   string   `json:"type"`
	Value  string   `json:"value"`
	Source string   `json:"source"`
	Lat    *float64 `json:"lat,omitempty"`
	Lon    *float64 `json:"lon,omitempty"`
}

// GetUserPrompt embeds the findings as a JSON array.
func GetUserPrompt(items []findings.Finding) string {
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	payload := make([]item, 0, len(items))
	for _, f := range items {
		payload = append(payload, item{Type: string(f.Type), Value: f.Value, Source: f.Source, Lat: f.Lat, Lon: f.Lon})
	}
	b, _ := json.Marshal(payload)
	return fmt.Sprintf("Summarize these %d OSINT findings and respond with the JSON per schema. Findings: %s", len(payload), b)
}

// ParseBrief decodes the model output.
func ParseBrief(content string) (ai.Brief, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var out struct {
		Summary    string   `json:"summary"`
		Highlights []string `json:"highlights"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return ai.Brief{}, fmt.Errorf("decode brief: %w", err)
	}
	if out.Highlights == nil {
		out.Highlights = []string{}
	}
	return ai.Brief{Summary: out.Summary, Highlights: out.Highlights}, nil
}
