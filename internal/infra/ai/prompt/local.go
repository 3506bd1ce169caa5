package prompt

import (
	"context"
	"fmt"
	"net/netip"
	"sort"
	"strings"

	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	"github.com/bryanwahyu/osintmap/internal/domain/findings"
)

var documentationNets = []netip.Prefix{
	netip.MustParsePrefix("192.0.2.0/24"),
	netip.MustParsePrefix("198.51.100.0/24"),
	netip.MustParsePrefix("203.0.113.0/24"),
}

// LocalAnalyst builds a brief from simple heuristics when no model is configured.
type LocalAnalyst struct{}

func (LocalAnalyst) Brief(_ context.Context, items []findings.Finding) (ai.Brief, error) {
	b := ai.Brief{Model: "local", Findings: len(items), Highlights: []string{}}
	if len(items) == 0 {
		b.Summary = "No findings collected yet."
		return b, nil
	}

	byType := map[findings.Category]int{}
	sources := map[string]struct{}{}
	mailDomains := map[string]int{}
	geo := 0
	for _, f := range items {
		byType[f.Type]++
		sources[f.Source] = struct{}{}
		if f.Lat != nil && f.Lon != nil {
			geo++
		}
		switch f.Type {
		case findings.CategoryIP:
			if note := classifyIP(f.Value); note != "" {
				b.Highlights = append(b.Highlights, fmt.Sprintf("%s is %s", f.Value, note))
			}
		case findings.CategoryEmail:
			if i := strings.LastIndex(f.Value, "@"); i >= 0 {
				mailDomains[f.Value[i+1:]]++
			}
		}
	}

	for _, d := range sortedKeys(mailDomains) {
		if mailDomains[d] > 1 {
			b.Highlights = append(b.Highlights, fmt.Sprintf("%d addresses share the mail domain %s", mailDomains[d], d))
		}
	}

	b.Summary = fmt.Sprintf("%d findings from %d sources: %d IPs, %d emails, %d domains; %d geolocated.",
		len(items), len(sources),
		byType[findings.CategoryIP], byType[findings.CategoryEmail], byType[findings.CategoryDomain], geo)
	return b, nil
}

func classifyIP(v string) string {
	addr, err := netip.ParseAddr(v)
	if err != nil {
		return ""
	}
	switch {
	case addr.IsPrivate():
		return "a private address and likely an internal leak"
	case addr.IsLoopback():
		return "a loopback address"
	}
	for _, p := range documentationNets {
		if p.Contains(addr) {
			return "in a documentation range"
		}
	}
	return ""
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
