package ai

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/osintmap/internal/application"
	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	"github.com/bryanwahyu/osintmap/internal/domain/analyst"
	"github.com/bryanwahyu/osintmap/internal/domain/findings"
	"github.com/bryanwahyu/osintmap/internal/logger"
)

// FindingLister is the read side the analyst needs.
type FindingLister interface {
	List(ctx context.Context, f findings.Filter) ([]findings.Finding, error)
}

// Service produces analyst briefs and keeps their history.
// A nil Client disables analysis; a nil Store skips persistence.
type Service struct {
	Client   ai.Client
	Store    analyst.Repository
	Findings FindingLister
	Clock    application.Clock
	Log      *logger.Logger
}

func NewService(client ai.Client, store analyst.Repository, lister FindingLister, log *logger.Logger) *Service {
	return &Service{
		Client:   client,
		Store:    store,
		Findings: lister,
		Clock:    application.SystemClock{},
		Log:      log,
	}
}

// Analyze briefs the current findings and stores the result.
func (s *Service) Analyze(ctx context.Context) (*analyst.Record, error) {
	if s.Client == nil {
		return nil, ai.ErrDisabled
	}
	items, err := s.Findings.List(ctx, findings.Filter{})
	if err != nil {
		return nil, findings.Infra("list findings", err)
	}

	b, err := s.Client.Brief(ctx, items)
	if err != nil {
		if errors.Is(err, ai.ErrQuotaExceeded) {
			return nil, err
		}
		return nil, findings.Infra("analyst brief", err)
	}

	rec := &analyst.Record{
		ID:         analyst.RecordID(uuid.NewString()),
		Summary:    b.Summary,
		Highlights: b.Highlights,
		Model:      b.Model,
		Findings:   b.Findings,
		CreatedAt:  s.now(),
	}
	if rec.Highlights == nil {
		rec.Highlights = []string{}
	}
	if s.Store != nil {
		if err := s.Store.Save(ctx, rec); err != nil {
			return nil, findings.Infra("save brief", err)
		}
	}
	if s.Log != nil {
		s.Log.WithComponent("analyst").Infow("brief produced",
			"id", rec.ID,
			"model", rec.Model,
			"findings", rec.Findings,
		)
	}
	return rec, nil
}

// History pages through stored briefs, newest first.
func (s *Service) History(ctx context.Context, page, pageSize int) (analyst.Page, error) {
	if s.Store == nil {
		page, pageSize = analyst.NormalizePage(page, pageSize)
		return analyst.Page{Data: []*analyst.Record{}, Page: page, PageSize: pageSize}, nil
	}
	out, err := s.Store.Paginate(ctx, page, pageSize)
	if err != nil {
		return analyst.Page{}, findings.Infra("list briefs", err)
	}
	return out, nil
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}
