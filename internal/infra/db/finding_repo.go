package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

type FindingRepository struct {
	db *sqlx.DB
}

func NewFindingRepository(db *sqlx.DB) *FindingRepository {
	return &FindingRepository{db: db}
}

// DB exposes the handle for health checks.
func (r *FindingRepository) DB() *sqlx.DB { return r.db }

// EnsureSchema creates the findings and briefs tables with their indexes if absent
func (r *FindingRepository) EnsureSchema(ctx context.Context) error {
	stmts, ok := schemas[r.db.DriverName()]
	if !ok {
		return fmt.Errorf("no schema for driver %q", r.db.DriverName())
	}
	for _, q := range stmts {
		if _, err := r.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Exists checks the (type, value, source) identity
func (r *FindingRepository) Exists(ctx context.Context, typ domain.Category, value, source string) (bool, error) {
	q := r.db.Rebind(`SELECT 1 FROM findings WHERE type=? AND value=? AND source=? LIMIT 1`)
	var one int
	err := r.db.QueryRowxContext(ctx, q, typ, value, source).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert appends a row and returns its id. A unique violation maps to ErrDuplicate.
func (r *FindingRepository) Insert(ctx context.Context, c domain.Candidate) (domain.FindingID, error) {
	c = c.Normalized()
	const base = `INSERT INTO findings (type, value, source, lat, lon) VALUES (?, ?, ?, ?, ?)`

	if r.db.DriverName() == DriverPostgres {
		var id int64
		err := r.db.QueryRowxContext(ctx, r.db.Rebind(base+` RETURNING id`),
			c.Type, c.Value, c.Source, c.Lat, c.Lon,
		).Scan(&id)
		if err != nil {
			return 0, r.insertErr(err)
		}
		return domain.FindingID(id), nil
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(base), c.Type, c.Value, c.Source, c.Lat, c.Lon)
	if err != nil {
		return 0, r.insertErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return domain.FindingID(id), nil
}

func (r *FindingRepository) insertErr(err error) error {
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return err
}

// List returns findings newest first
func (r *FindingRepository) List(ctx context.Context, f domain.Filter) ([]domain.Finding, error) {
	var (
		where []string
		args  []interface{}
	)
	if f.Type != "" {
		where = append(where, "type = ?")
		args = append(args, f.Type)
	}
	if f.Source != "" {
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "value LIKE ? ESCAPE '"+likeEscape+"'")
		args = append(args, "%"+escapeLikePattern(s)+"%")
	}

	query := `SELECT id, type, value, source, lat, lon FROM findings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"

	out := []domain.Finding{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("querying findings: %w", err)
	}
	return out, nil
}

// ListGeoTagged returns rows carrying both coordinates
func (r *FindingRepository) ListGeoTagged(ctx context.Context) ([]domain.GeoPoint, error) {
	const q = `
SELECT lat, lon, value
FROM findings
WHERE lat IS NOT NULL AND lon IS NOT NULL
ORDER BY id ASC`
	out := []domain.GeoPoint{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("querying geo findings: %w", err)
	}
	return out, nil
}

// ListForExport returns rows oldest first for a stable report order
func (r *FindingRepository) ListForExport(ctx context.Context) ([]domain.ReportRow, error) {
	const q = `SELECT type, value, source FROM findings ORDER BY id ASC`
	out := []domain.ReportRow{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("querying report rows: %w", err)
	}
	return out, nil
}

// DeleteByID removes a single row and reports how many were deleted
func (r *FindingRepository) DeleteByID(ctx context.Context, id domain.FindingID) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM findings WHERE id = ?`), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Stats aggregates counts per type and source
func (r *FindingRepository) Stats(ctx context.Context) (domain.Stats, error) {
	st := domain.Stats{
		ByType:   map[domain.Category]int{},
		BySource: map[string]int{},
	}

	const totals = `
SELECT COUNT(*) AS total,
       COALESCE(SUM(CASE WHEN lat IS NOT NULL AND lon IS NOT NULL THEN 1 ELSE 0 END), 0) AS geo
FROM findings`
	if err := r.db.QueryRowxContext(ctx, totals).Scan(&st.Total, &st.GeoTagged); err != nil {
		return domain.Stats{}, err
	}

	var groups []struct {
		Key   string `db:"k"`
		Count int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &groups, `SELECT type AS k, COUNT(*) AS n FROM findings GROUP BY type`); err != nil {
		return domain.Stats{}, err
	}
	for _, g := range groups {
		st.ByType[domain.Category(g.Key)] = g.Count
	}

	groups = groups[:0]
	if err := r.db.SelectContext(ctx, &groups, `SELECT source AS k, COUNT(*) AS n FROM findings GROUP BY source`); err != nil {
		return domain.Stats{}, err
	}
	for _, g := range groups {
		st.BySource[g.Key] = g.Count
	}
	return st, nil
}
