// Package dataset reads and writes feature collections from flat files.
//
// Supported formats are picked by file extension: shapefiles (.shp),
// point CSVs (.csv), GeoJSON (.geojson, .json) and WKT output (.wkt).
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// Options tunes reading and writing behavior.
type Options struct {
	// LonColumn and LatColumn name the CSV coordinate columns.
	// Matching is case-insensitive. Defaults: "lon" and "lat".
	LonColumn string
	LatColumn string

	// ErrorLimit aborts a CSV read after this many malformed rows.
	// Zero means fail on the first one.
	ErrorLimit int

	// Compact minifies GeoJSON output instead of indenting it.
	Compact bool
}

func (o Options) lonColumn() string {
	if o.LonColumn == "" {
		return "lon"
	}
	return o.LonColumn
}

func (o Options) latColumn() string {
	if o.LatColumn == "" {
		return "lat"
	}
	return o.LatColumn
}

// Load reads a feature collection from path, dispatching on extension.
// The collection is tagged with the given EPSG code.
func Load(path string, epsg int, opts Options) (*feature.Collection, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".shp":
		return loadShapefile(path, epsg)
	case ".csv":
		return loadCSV(path, epsg, opts)
	case ".geojson", ".json":
		return loadGeoJSON(path, epsg)
	default:
		return nil, fmt.Errorf("unsupported input extension %q", ext)
	}
}

// Save writes a feature collection to path, dispatching on extension.
// Parent directories are created as needed.
func Save(path string, c *feature.Collection, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return saveGeoJSON(path, c, opts)
	case ".wkt":
		return saveWKT(path, c)
	case ".csv":
		return saveCSV(path, c, opts)
	default:
		return fmt.Errorf("unsupported output extension %q", ext)
	}
}
