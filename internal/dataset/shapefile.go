package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// loadShapefile reads points, polylines and polygons from an ESRI
// shapefile. DBF attributes are carried into feature properties.
func loadShapefile(path string, epsg int) (*feature.Collection, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer func() { _ = reader.Close() }()

	fields := reader.Fields()
	collection := feature.NewCollection(epsg)

	for reader.Next() {
		n, shape := reader.Shape()

		geometry, err := shapeGeometry(shape)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n, err)
		}
		if geometry == nil {
			log.Warn().Int("record", n).Str("path", path).Msg("Skipping NULL shape")
			continue
		}

		f := feature.NewFeature(geometry)
		f.ID = strconv.Itoa(n)
		for i, fld := range fields {
			f.Properties[fld.String()] = attributeValue(fld, reader.ReadAttribute(n, i))
		}
		collection.Append(f)
	}

	return collection, nil
}

func shapeGeometry(shape shp.Shape) (orb.Geometry, error) {
	switch s := shape.(type) {
	case *shp.Null:
		return nil, nil
	case *shp.Point:
		return orb.Point{s.X, s.Y}, nil
	case *shp.MultiPoint:
		mp := make(orb.MultiPoint, len(s.Points))
		for i, p := range s.Points {
			mp[i] = orb.Point{p.X, p.Y}
		}
		return mp, nil
	case *shp.PolyLine:
		lines := splitParts(s.Parts, s.Points)
		if len(lines) == 1 {
			return orb.LineString(lines[0]), nil
		}
		mls := make(orb.MultiLineString, len(lines))
		for i, l := range lines {
			mls[i] = orb.LineString(l)
		}
		return mls, nil
	case *shp.Polygon:
		return polygonGeometry(splitParts(s.Parts, s.Points)), nil
	default:
		return nil, fmt.Errorf("unsupported shape type %T", shape)
	}
}

// splitParts slices the flat point array into per-part point lists.
func splitParts(parts []int32, points []shp.Point) [][]orb.Point {
	out := make([][]orb.Point, 0, len(parts))
	for i, first := range parts {
		last := len(points)
		if i < len(parts)-1 {
			last = int(parts[i+1])
		}

		part := make([]orb.Point, 0, last-int(first))
		for _, p := range points[first:last] {
			part = append(part, orb.Point{p.X, p.Y})
		}
		out = append(out, part)
	}
	return out
}

// polygonGeometry groups shapefile rings into polygons. Per the ESRI
// convention outer rings wind clockwise and holes counter-clockwise;
// each hole belongs to the most recent shell.
func polygonGeometry(parts [][]orb.Point) orb.Geometry {
	var polygons orb.MultiPolygon

	for _, part := range parts {
		if len(part) < 4 {
			continue
		}
		ring := orb.Ring(part)

		if signedArea(ring) <= 0 || len(polygons) == 0 {
			polygons = append(polygons, orb.Polygon{ring})
		} else {
			last := len(polygons) - 1
			polygons[last] = append(polygons[last], ring)
		}
	}

	if len(polygons) == 1 {
		return polygons[0]
	}
	return polygons
}

// signedArea is the shoelace area: negative for clockwise rings.
func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

func attributeValue(fld shp.Field, raw string) interface{} {
	value := strings.TrimSpace(raw)
	switch fld.Fieldtype {
	case 'N', 'F':
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	case 'L':
		switch value {
		case "T", "t", "Y", "y":
			return true
		case "F", "f", "N", "n":
			return false
		}
	}
	return value
}
