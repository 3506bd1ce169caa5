package heatmap

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	domain "github.com/bryanwahyu/osintmap/internal/domain/findings"
)

// Default view: whole world.
const (
	DefaultLat  = 20.0
	DefaultLon  = 0.0
	DefaultZoom = 2
)

//go:embed map.html.tmpl
var mapTemplate string

var tmpl = template.Must(template.New("map").Parse(mapTemplate))

type marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value string  `json:"value"`
}

type view struct {
	Title   string
	Lat     float64
	Lon     float64
	Zoom    int
	Markers []marker
}

// Renderer writes a standalone Leaflet page with one marker per geo-tagged finding.
type Renderer struct {
	source domain.GeoSource
	path   string
}

func NewRenderer(source domain.GeoSource, path string) *Renderer {
	return &Renderer{source: source, path: path}
}

func (r *Renderer) Path() string { return r.path }

// Regenerate overwrites the map artifact from the current store state.
func (r *Renderer) Regenerate(ctx context.Context) error {
	points, err := r.source.ListGeoTagged(ctx)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Render(&buf, points); err != nil {
		return err
	}
	return writeAtomic(r.path, buf.Bytes())
}

// EnsureExists regenerates the artifact only when it is missing.
func (r *Renderer) EnsureExists(ctx context.Context) error {
	_, err := os.Stat(r.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return r.Regenerate(ctx)
}

// Render writes the map page for points to w.
func Render(w io.Writer, points []domain.GeoPoint) error {
	v := view{
		Title:   "OSINT Findings Map",
		Lat:     DefaultLat,
		Lon:     DefaultLon,
		Zoom:    DefaultZoom,
		Markers: make([]marker, 0, len(points)),
	}
	for _, p := range points {
		v.Markers = append(v.Markers, marker{Lat: p.Lat, Lon: p.Lon, Value: p.Value})
	}
	if err := tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".heatmap-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
