package findings

import (
	"fmt"
	"strings"
)

// Tool enum. The set is closed: ParseTool rejects anything else.
type Tool string

const (
	ToolShodan       Tool = "shodan"
	ToolTheHarvester Tool = "theharvester"
	ToolGoogleDorks  Tool = "googledorks"
	ToolMaltego      Tool = "maltego"
)

const defaultHarvestDomain = "example.com"

var toolAliases = map[string]Tool{
	"shodan":       ToolShodan,
	"theharvester": ToolTheHarvester,
	"googledorks":  ToolGoogleDorks,
	"google_dorks": ToolGoogleDorks,
	"maltego":      ToolMaltego,
}

// Tools returns every supported tool in display order.
func Tools() []Tool {
	return []Tool{ToolShodan, ToolTheHarvester, ToolGoogleDorks, ToolMaltego}
}

// ParseTool resolves a tool name by exact match.
func ParseTool(name string) (Tool, error) {
	t, ok := toolAliases[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTool, name)
	}
	return t, nil
}

// SourceName is the provenance label stored with each finding.
func (t Tool) SourceName() string {
	switch t {
	case ToolShodan:
		return "Shodan"
	case ToolTheHarvester:
		return "theHarvester"
	case ToolGoogleDorks:
		return "Google Dorks"
	case ToolMaltego:
		return "Maltego"
	default:
		return string(t)
	}
}

// Simulate returns the canned records the tool "discovers" for query.
// It is pure and never fails; empty queries are rejected by the caller.
func (t Tool) Simulate(query string) []Candidate {
	src := t.SourceName()
	switch t {
	case ToolShodan:
		// fixed stub, query is ignored
		return []Candidate{
			{Type: CategoryIP, Value: "8.8.8.8", Source: src, Lat: coord(37.3861), Lon: coord(-122.0839)},
			{Type: CategoryIP, Value: "192.168.1.1", Source: src, Lat: coord(37.7749), Lon: coord(-122.4194)},
			{Type: CategoryIP, Value: "203.0.113.1", Source: src, Lat: coord(35.6762), Lon: coord(139.6503)},
		}
	case ToolTheHarvester:
		domain := defaultHarvestDomain
		if i := strings.LastIndex(query, "@"); i >= 0 {
			domain = query[i+1:]
		}
		return []Candidate{
			{Type: CategoryEmail, Value: "admin@" + domain, Source: src},
		}
	case ToolGoogleDorks:
		return []Candidate{
			{Type: CategoryDomain, Value: query + ".example", Source: src},
		}
	case ToolMaltego:
		// linked entities: domain, resolved IP, contact address
		return []Candidate{
			{Type: CategoryDomain, Value: query, Source: src},
			{Type: CategoryIP, Value: "203.0.113.5", Source: src, Lat: coord(35.6895), Lon: coord(139.6917)},
			{Type: CategoryEmail, Value: "contact@" + query, Source: src},
		}
	default:
		return nil
	}
}
