// Package topo performs topological operations on geometries.
//
// The heavy lifting happens in GEOS through the gogeos bindings; this
// package only converts between the orb model and geos geometries.
package topo

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulsmith/gogeos/geos"
)

func toGeos(g orb.Geometry) (*geos.Geometry, error) {
	switch t := g.(type) {
	case orb.Point:
		return geos.NewPoint(coord(t))
	case orb.MultiPoint:
		points := make([]*geos.Geometry, len(t))
		for i, p := range t {
			point, err := geos.NewPoint(coord(p))
			if err != nil {
				return nil, err
			}
			points[i] = point
		}
		return geos.NewCollection(geos.MULTIPOINT, points...)
	case orb.LineString:
		return geos.NewLineString(coords(t)...)
	case orb.MultiLineString:
		lines := make([]*geos.Geometry, len(t))
		for i, ls := range t {
			line, err := geos.NewLineString(coords(ls)...)
			if err != nil {
				return nil, err
			}
			lines[i] = line
		}
		return geos.NewCollection(geos.MULTILINESTRING, lines...)
	case orb.Ring:
		return geos.NewPolygon(coords(orb.LineString(t)))
	case orb.Polygon:
		return polygonToGeos(t)
	case orb.MultiPolygon:
		polygons := make([]*geos.Geometry, len(t))
		for i, p := range t {
			polygon, err := polygonToGeos(p)
			if err != nil {
				return nil, err
			}
			polygons[i] = polygon
		}
		return geos.NewCollection(geos.MULTIPOLYGON, polygons...)
	case orb.Bound:
		return polygonToGeos(orb.Polygon{t.ToRing()})
	case orb.Collection:
		members := make([]*geos.Geometry, len(t))
		for i, m := range t {
			member, err := toGeos(m)
			if err != nil {
				return nil, err
			}
			members[i] = member
		}
		return geos.NewCollection(geos.GEOMETRYCOLLECTION, members...)
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

func polygonToGeos(p orb.Polygon) (*geos.Geometry, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("polygon has no rings")
	}
	shell := coords(orb.LineString(p[0]))
	holes := make([][]geos.Coord, len(p)-1)
	for i, ring := range p[1:] {
		holes[i] = coords(orb.LineString(ring))
	}
	return geos.NewPolygon(shell, holes...)
}

func fromGeos(g *geos.Geometry) (orb.Geometry, error) {
	t, err := g.Type()
	if err != nil {
		return nil, err
	}

	switch t {
	case geos.POINT:
		return pointFromGeos(g)
	case geos.LINESTRING, geos.LINEARRING:
		line, err := lineFromGeos(g)
		if err != nil {
			return nil, err
		}
		return line, nil
	case geos.POLYGON:
		return polygonFromGeos(g)
	case geos.MULTIPOINT:
		n, err := g.NGeometry()
		if err != nil {
			return nil, err
		}
		mp := make(orb.MultiPoint, n)
		for i := 0; i < n; i++ {
			member, err := g.Geometry(i)
			if err != nil {
				return nil, err
			}
			p, err := pointFromGeos(member)
			if err != nil {
				return nil, err
			}
			mp[i] = p
		}
		return mp, nil
	case geos.MULTILINESTRING:
		n, err := g.NGeometry()
		if err != nil {
			return nil, err
		}
		mls := make(orb.MultiLineString, n)
		for i := 0; i < n; i++ {
			member, err := g.Geometry(i)
			if err != nil {
				return nil, err
			}
			line, err := lineFromGeos(member)
			if err != nil {
				return nil, err
			}
			mls[i] = line
		}
		return mls, nil
	case geos.MULTIPOLYGON:
		n, err := g.NGeometry()
		if err != nil {
			return nil, err
		}
		mp := make(orb.MultiPolygon, n)
		for i := 0; i < n; i++ {
			member, err := g.Geometry(i)
			if err != nil {
				return nil, err
			}
			poly, err := polygonFromGeos(member)
			if err != nil {
				return nil, err
			}
			mp[i] = poly
		}
		return mp, nil
	case geos.GEOMETRYCOLLECTION:
		n, err := g.NGeometry()
		if err != nil {
			return nil, err
		}
		col := make(orb.Collection, 0, n)
		for i := 0; i < n; i++ {
			member, err := g.Geometry(i)
			if err != nil {
				return nil, err
			}
			mg, err := fromGeos(member)
			if err != nil {
				return nil, err
			}
			col = append(col, mg)
		}
		return col, nil
	default:
		return nil, fmt.Errorf("unsupported geos type %v", t)
	}
}

func pointFromGeos(g *geos.Geometry) (orb.Point, error) {
	x, err := g.X()
	if err != nil {
		return orb.Point{}, err
	}
	y, err := g.Y()
	if err != nil {
		return orb.Point{}, err
	}
	return orb.Point{x, y}, nil
}

func lineFromGeos(g *geos.Geometry) (orb.LineString, error) {
	n, err := g.NPoint()
	if err != nil {
		return nil, err
	}
	line := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		p, err := g.Point(i)
		if err != nil {
			return nil, err
		}
		pt, err := pointFromGeos(p)
		if err != nil {
			return nil, err
		}
		line[i] = pt
	}
	return line, nil
}

func polygonFromGeos(g *geos.Geometry) (orb.Polygon, error) {
	shell, err := g.Shell()
	if err != nil {
		return nil, err
	}
	ring, err := lineFromGeos(shell)
	if err != nil {
		return nil, err
	}

	holes, err := g.Holes()
	if err != nil {
		return nil, err
	}

	poly := make(orb.Polygon, len(holes)+1)
	poly[0] = orb.Ring(ring)
	for i, h := range holes {
		hr, err := lineFromGeos(h)
		if err != nil {
			return nil, err
		}
		poly[i+1] = orb.Ring(hr)
	}
	return poly, nil
}

func coord(p orb.Point) geos.Coord {
	return geos.Coord{X: p[0], Y: p[1]}
}

func coords(ls orb.LineString) []geos.Coord {
	cs := make([]geos.Coord, len(ls))
	for i, p := range ls {
		cs[i] = coord(p)
	}
	return cs
}
