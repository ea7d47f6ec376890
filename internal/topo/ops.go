package topo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulsmith/gogeos/geos"
)

// ErrEmptyResult is returned when an overlay operation produces an empty
// geometry, e.g. an intersection of disjoint inputs.
var ErrEmptyResult = errors.New("empty geometry result")

// Predicate names a boolean spatial relation between two geometries.
type Predicate string

const (
	Intersects Predicate = "intersects"
	Contains   Predicate = "contains"
	Within     Predicate = "within"
	Touches    Predicate = "touches"
	Disjoint   Predicate = "disjoint"
)

// ParsePredicate validates a predicate name.
func ParsePredicate(name string) (Predicate, error) {
	switch Predicate(name) {
	case Intersects, Contains, Within, Touches, Disjoint:
		return Predicate(name), nil
	default:
		return "", fmt.Errorf("unknown spatial predicate %q", name)
	}
}

// Buffer returns the polygonal region within distance of g. The distance
// is in the units of the geometry's CRS.
func Buffer(g orb.Geometry, distance float64) (orb.Geometry, error) {
	gg, err := toGeos(g)
	if err != nil {
		return nil, err
	}
	buffered, err := gg.Buffer(distance)
	if err != nil {
		return nil, err
	}
	return fromGeos(buffered)
}

// Intersection returns the shared region of a and b, or ErrEmptyResult
// when they do not overlap.
func Intersection(a, b orb.Geometry) (orb.Geometry, error) {
	return overlay(a, b, (*geos.Geometry).Intersection)
}

// Union returns the combined region of a and b.
func Union(a, b orb.Geometry) (orb.Geometry, error) {
	return overlay(a, b, (*geos.Geometry).Union)
}

// Difference returns the region of a not covered by b, or ErrEmptyResult
// when b covers a entirely.
func Difference(a, b orb.Geometry) (orb.Geometry, error) {
	return overlay(a, b, (*geos.Geometry).Difference)
}

func overlay(a, b orb.Geometry, op func(*geos.Geometry, *geos.Geometry) (*geos.Geometry, error)) (orb.Geometry, error) {
	ga, err := toGeos(a)
	if err != nil {
		return nil, err
	}
	gb, err := toGeos(b)
	if err != nil {
		return nil, err
	}
	result, err := op(ga, gb)
	if err != nil {
		return nil, err
	}
	empty, err := result.IsEmpty()
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, ErrEmptyResult
	}
	return fromGeos(result)
}

// Eval evaluates a spatial predicate between a and b.
func Eval(p Predicate, a, b orb.Geometry) (bool, error) {
	ga, err := toGeos(a)
	if err != nil {
		return false, err
	}
	gb, err := toGeos(b)
	if err != nil {
		return false, err
	}

	switch p {
	case Intersects:
		return ga.Intersects(gb)
	case Contains:
		return ga.Contains(gb)
	case Within:
		return ga.Within(gb)
	case Touches:
		return ga.Touches(gb)
	case Disjoint:
		return ga.Disjoint(gb)
	default:
		return false, fmt.Errorf("unknown spatial predicate %q", p)
	}
}

// Valid reports whether g is a valid geometry under the OGC rules.
func Valid(g orb.Geometry) (bool, error) {
	gg, err := toGeos(g)
	if err != nil {
		return false, err
	}
	return gg.IsValid()
}

// Simplify reduces vertex count while preserving topology.
func Simplify(g orb.Geometry, tolerance float64) (orb.Geometry, error) {
	gg, err := toGeos(g)
	if err != nil {
		return nil, err
	}
	simplified, err := gg.SimplifyP(tolerance)
	if err != nil {
		return nil, err
	}
	return fromGeos(simplified)
}

// Centroid returns the geometric center of g.
func Centroid(g orb.Geometry) (orb.Point, error) {
	gg, err := toGeos(g)
	if err != nil {
		return orb.Point{}, err
	}
	center, err := gg.Centroid()
	if err != nil {
		return orb.Point{}, err
	}
	return pointFromGeos(center)
}

// Area returns the planar area of g in squared CRS units.
func Area(g orb.Geometry) (float64, error) {
	gg, err := toGeos(g)
	if err != nil {
		return 0, err
	}
	return gg.Area()
}
