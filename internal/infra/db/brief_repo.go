package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"

	domain "github.com/bryanwahyu/osintmap/internal/domain/analyst"
)

// BriefRepository stores analyst briefs next to the findings.
type BriefRepository struct {
	db *sqlx.DB
}

func NewBriefRepository(db *sqlx.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

type briefRow struct {
	ID         string    `db:"id"`
	Summary    string    `db:"summary"`
	Highlights string    `db:"highlights"`
	Model      string    `db:"model"`
	Findings   int       `db:"findings"`
	CreatedAt  time.Time `db:"created_at"`
}

// Save inserts a brief record
func (r *BriefRepository) Save(ctx context.Context, rec *domain.Record) error {
	highlights := rec.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	raw, err := json.Marshal(highlights)
	if err != nil {
		return err
	}
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	q := r.db.Rebind(`
INSERT INTO briefs (id, summary, highlights, model, findings, created_at)
VALUES (?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, q,
		string(rec.ID), rec.Summary, string(raw), rec.Model, rec.Findings, createdAt.UTC(),
	)
	return err
}

// Paginate returns a page of briefs ordered by created_at desc
func (r *BriefRepository) Paginate(ctx context.Context, page, pageSize int) (domain.Page, error) {
	page, pageSize = domain.NormalizePage(page, pageSize)
	out := domain.Page{Data: []*domain.Record{}, Page: page, PageSize: pageSize}

	if err := r.db.GetContext(ctx, &out.Total, `SELECT COUNT(*) FROM briefs`); err != nil {
		return out, err
	}
	out.TotalPages = int((out.Total + int64(pageSize) - 1) / int64(pageSize))

	var rows []briefRow
	q := r.db.Rebind(`
SELECT id, summary, highlights, model, findings, created_at
FROM briefs
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`)
	if err := r.db.SelectContext(ctx, &rows, q, pageSize, (page-1)*pageSize); err != nil {
		return out, err
	}

	for _, row := range rows {
		rec := &domain.Record{
			ID:        domain.RecordID(row.ID),
			Summary:   row.Summary,
			Model:     row.Model,
			Findings:  row.Findings,
			CreatedAt: row.CreatedAt.UTC(),
		}
		if err := json.Unmarshal([]byte(row.Highlights), &rec.Highlights); err != nil {
			return out, err
		}
		out.Data = append(out.Data, rec)
	}
	return out, nil
}
