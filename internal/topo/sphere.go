package topo

import (
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// SphericalContains reports whether a polygon in geographic coordinates
// (degrees of lon/lat) contains the point, evaluated on the sphere.
// Planar predicates distort near the poles and the antimeridian; for
// EPSG:4326 layers this is the correct containment test.
//
// Ring winding is normalized before the test: shapefiles wind shells
// clockwise while s2 wants the interior on the left of each loop.
func SphericalContains(poly orb.Polygon, pt orb.Point) bool {
	loops := make([]*s2.Loop, 0, len(poly))
	for i, ring := range poly {
		want := orb.CCW
		if i > 0 {
			want = orb.CW // holes wind opposite to the shell
		}
		loops = append(loops, loopFromRing(ring, want))
	}
	s2poly := s2.PolygonFromOrientedLoops(loops)
	return s2poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(pt[1], pt[0])))
}

// SphericalMultiContains is SphericalContains over a multipolygon.
func SphericalMultiContains(mp orb.MultiPolygon, pt orb.Point) bool {
	for _, poly := range mp {
		if SphericalContains(poly, pt) {
			return true
		}
	}
	return false
}

func loopFromRing(ring orb.Ring, want orb.Orientation) *s2.Loop {
	n := len(ring)
	// s2 loops must not repeat the closing vertex
	if n > 1 && ring.Closed() {
		n--
	}

	points := make([]s2.Point, 0, n)
	for _, p := range ring[:n] {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(p[1], p[0])))
	}

	if ring.Orientation() != want {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return s2.LoopFromPoints(points)
}
