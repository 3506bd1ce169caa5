package findings

// FindingID is assigned by the store and never reused.
type FindingID int64

// Category of a discovered artifact
type Category string

const (
	CategoryIP     Category = "IP"
	CategoryEmail  Category = "Email"
	CategoryDomain Category = "Domain"
)

// Finding is one persisted OSINT artifact with its provenance.
// Lat and Lon are either both set or both nil.
type Finding struct {
	ID     FindingID `json:"id" db:"id"`
	Type   Category  `json:"type" db:"type"`
	Value  string    `json:"value" db:"value"`
	Source string    `json:"source" db:"source"`
	Lat    *float64  `json:"lat" db:"lat"`
	Lon    *float64  `json:"lon" db:"lon"`
}

// Candidate is a record produced by a simulator before dedup/insert.
type Candidate struct {
	Type   Category
	Value  string
	Source string
	Lat    *float64
	Lon    *float64
}

// Normalized drops a half-present coordinate pair.
func (c Candidate) Normalized() Candidate {
	if !c.HasGeo() {
		c.Lat, c.Lon = nil, nil
	}
	return c
}

// HasGeo reports whether both coordinates are present.
func (c Candidate) HasGeo() bool { return c.Lat != nil && c.Lon != nil }

// GeoPoint is a geo-tagged finding as drawn on the map.
type GeoPoint struct {
	Lat   float64 `db:"lat"`
	Lon   float64 `db:"lon"`
	Value string  `db:"value"`
}

// ReportRow is the projection used by the exported report.
type ReportRow struct {
	Type   Category `db:"type"`
	Value  string   `db:"value"`
	Source string   `db:"source"`
}

// Filter narrows List. The zero value lists everything.
type Filter struct {
	Type   Category
	Source string
	Search string // substring of value
}

// Stats summarizes the store content
type Stats struct {
	Total     int              `json:"total"`
	GeoTagged int              `json:"geo_tagged"`
	ByType    map[Category]int `json:"by_type"`
	BySource  map[string]int   `json:"by_source"`
}

// CollectResult reports how many simulated records were persisted.
type CollectResult struct {
	Inserted  int `json:"inserted"`
	Requested int `json:"requested"`
}

func coord(v float64) *float64 { return &v }
