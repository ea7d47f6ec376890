// Package feature holds the simple-feature model: geometries with
// attribute data, grouped into layers (collections) tagged with a CRS.
package feature

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature is a single simple feature: a geometry plus attribute data.
type Feature struct {
	ID         string
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// NewFeature creates a feature with an empty property map.
func NewFeature(g orb.Geometry) *Feature {
	return &Feature{Geometry: g, Properties: geojson.Properties{}}
}

// Clone returns a copy of the feature with its own property map.
// The geometry is shared; operations replace geometries, never mutate them.
func (f *Feature) Clone() *Feature {
	props := make(geojson.Properties, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}
	return &Feature{ID: f.ID, Geometry: f.Geometry, Properties: props}
}

// Collection is an ordered set of features sharing one CRS.
type Collection struct {
	EPSG     int
	Features []*Feature

	bound    orb.Bound
	boundSet bool
}

// NewCollection creates an empty collection in the given CRS.
func NewCollection(epsg int) *Collection {
	return &Collection{EPSG: epsg}
}

// Append adds a feature and invalidates the cached bound.
func (c *Collection) Append(f *Feature) {
	c.Features = append(c.Features, f)
	c.boundSet = false
}

// Len returns the number of features.
func (c *Collection) Len() int {
	return len(c.Features)
}

// Bound returns the union of all feature bounds. The zero bound is
// returned for an empty collection.
func (c *Collection) Bound() orb.Bound {
	if c.boundSet {
		return c.bound
	}

	var b orb.Bound
	first := true
	for _, f := range c.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b = f.Geometry.Bound()
			first = false
		} else {
			b = b.Union(f.Geometry.Bound())
		}
	}

	c.bound = b
	c.boundSet = true
	return b
}

// GeometryTypes returns a histogram of geometry type names.
func (c *Collection) GeometryTypes() map[string]int {
	types := make(map[string]int)
	for _, f := range c.Features {
		if f.Geometry == nil {
			continue
		}
		types[f.Geometry.GeoJSONType()]++
	}
	return types
}

// AttributeSchema returns the union of property keys mapped to a value
// kind ("string", "number", "bool" or "mixed").
func (c *Collection) AttributeSchema() map[string]string {
	schema := make(map[string]string)
	for _, f := range c.Features {
		for k, v := range f.Properties {
			kind := valueKind(v)
			if prev, ok := schema[k]; ok && prev != kind {
				schema[k] = "mixed"
				continue
			}
			schema[k] = kind
		}
	}
	return schema
}

// AttributeKeys returns the schema keys in sorted order.
func (c *Collection) AttributeKeys() []string {
	schema := c.AttributeSchema()
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Filter returns a new collection holding the features for which keep
// returns true. Features are shared, not copied.
func (c *Collection) Filter(keep func(*Feature) bool) *Collection {
	out := NewCollection(c.EPSG)
	for _, f := range c.Features {
		if keep(f) {
			out.Append(f)
		}
	}
	return out
}

func valueKind(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case float64, float32, int, int64, int32:
		return "number"
	case bool:
		return "bool"
	default:
		return fmt.Sprintf("%T", v)
	}
}
