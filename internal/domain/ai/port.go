package ai

import (
	"context"

	"github.com/bryanwahyu/osintmap/internal/domain/findings"
)

// Brief is the analyst summary produced for a set of findings.
type Brief struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Model      string   `json:"model,omitempty"`
	Findings   int      `json:"findings"`
}

type Client interface {
	Brief(ctx context.Context, items []findings.Finding) (Brief, error)
}
