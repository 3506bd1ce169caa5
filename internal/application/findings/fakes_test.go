package findings

import (
	"context"
	"errors"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

type memRepo struct {
	mu     sync.Mutex
	nextID domain.FindingID
	rows   []domain.Finding

	failInsertAt int // 1-based insert call that fails; 0 = never
	insertCalls  int
	existsLies   bool // Exists always answers false
	listErr      error
}

func (r *memRepo) EnsureSchema(context.Context) error { return nil }

func (r *memRepo) Exists(_ context.Context, typ domain.Category, value, source string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.existsLies {
		return false, nil
	}
	return r.find(typ, value, source), nil
}

func (r *memRepo) find(typ domain.Category, value, source string) bool {
	for _, f := range r.rows {
		if f.Type == typ && f.Value == value && f.Source == source {
			return true
		}
	}
	return false
}

func (r *memRepo) Insert(_ context.Context, c domain.Candidate) (domain.FindingID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.failInsertAt > 0 && r.insertCalls == r.failInsertAt {
		return 0, errors.New("disk I/O error")
	}
	if r.find(c.Type, c.Value, c.Source) {
		return 0, domain.ErrDuplicate
	}
	c = c.Normalized()
	r.nextID++
	r.rows = append(r.rows, domain.Finding{ID: r.nextID, Type: c.Type, Value: c.Value, Source: c.Source, Lat: c.Lat, Lon: c.Lon})
	return r.nextID, nil
}

func (r *memRepo) List(_ context.Context, f domain.Filter) ([]domain.Finding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := []domain.Finding{}
	for _, row := range r.rows {
		if f.Type != "" && row.Type != f.Type {
			continue
		}
		if f.Source != "" && row.Source != f.Source {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) ListGeoTagged(context.Context) ([]domain.GeoPoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.GeoPoint{}
	for _, row := range r.rows {
		if row.Lat != nil && row.Lon != nil {
			out = append(out, domain.GeoPoint{Lat: *row.Lat, Lon: *row.Lon, Value: row.Value})
		}
	}
	return out, nil
}

func (r *memRepo) ListForExport(context.Context) ([]domain.ReportRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ReportRow{}
	for _, row := range r.rows {
		out = append(out, domain.ReportRow{Type: row.Type, Value: row.Value, Source: row.Source})
	}
	return out, nil
}

func (r *memRepo) DeleteByID(_ context.Context, id domain.FindingID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memRepo) Stats(context.Context) (domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := domain.Stats{Total: len(r.rows), ByType: map[domain.Category]int{}, BySource: map[string]int{}}
	for _, row := range r.rows {
		st.ByType[row.Type]++
		st.BySource[row.Source]++
		if row.Lat != nil {
			st.GeoTagged++
		}
	}
	return st, nil
}

type fakeMap struct {
	regenerations int
	ensures       int
	lastMarkers   int
	src           domain.GeoSource
	err           error
}

func (m *fakeMap) Regenerate(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.regenerations++
	if m.src != nil {
		pts, err := m.src.ListGeoTagged(ctx)
		if err != nil {
			return err
		}
		m.lastMarkers = len(pts)
	}
	return nil
}

func (m *fakeMap) EnsureExists(ctx context.Context) error {
	m.ensures++
	if m.regenerations == 0 {
		return m.Regenerate(ctx)
	}
	return nil
}

func (m *fakeMap) Path() string { return "static/heatmap.html" }

type fakeExporter struct {
	err error
}

func (e *fakeExporter) Export(context.Context) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return "osint_report.pdf", nil
}

func (e *fakeExporter) RenderHTML(context.Context) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return []byte("<h1>OSINT Findings Report</h1>"), nil
}

type fakeArtifacts struct {
	keys []string
	err  error
}

func (a *fakeArtifacts) Upload(_ context.Context, _ string, key string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.keys = append(a.keys, key)
	return "http://minio.local/osint/" + key, nil
}
