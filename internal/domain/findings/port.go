package findings

import "context"

// Repository port (persistence of findings)
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Exists(ctx context.Context, typ Category, value, source string) (bool, error)
	Insert(ctx context.Context, c Candidate) (FindingID, error)
	List(ctx context.Context, f Filter) ([]Finding, error)
	ListGeoTagged(ctx context.Context) ([]GeoPoint, error)
	ListForExport(ctx context.Context) ([]ReportRow, error)
	DeleteByID(ctx context.Context, id FindingID) (int64, error)
	Stats(ctx context.Context) (Stats, error)
}

// GeoSource is the read side the map renderer needs.
type GeoSource interface {
	ListGeoTagged(ctx context.Context) ([]GeoPoint, error)
}

// ReportSource is the read side the report exporter needs.
type ReportSource interface {
	ListForExport(ctx context.Context) ([]ReportRow, error)
}

// MapRenderer regenerates the map artifact from the current store state.
type MapRenderer interface {
	Regenerate(ctx context.Context) error
	EnsureExists(ctx context.Context) error
	Path() string
}

// Exporter renders the findings report and returns the written path.
type Exporter interface {
	Export(ctx context.Context) (string, error)
	RenderHTML(ctx context.Context) ([]byte, error)
}

// ArtifactStore port (optional mirror of generated artifacts)
type ArtifactStore interface {
	Upload(ctx context.Context, localPath, key string) (string, error)
}
