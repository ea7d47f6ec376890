package topo

import (
	"testing"

	"github.com/paulmach/orb"
)

// Counter-clockwise ring around downtown San Francisco.
var sfRing = orb.Ring{
	{-122.52, 37.70},
	{-122.35, 37.70},
	{-122.35, 37.83},
	{-122.52, 37.83},
	{-122.52, 37.70},
}

func TestSphericalContains(t *testing.T) {
	poly := orb.Polygon{sfRing}

	tests := []struct {
		name string
		pt   orb.Point
		want bool
	}{
		{"city hall", orb.Point{-122.4193, 37.7793}, true},
		{"oakland", orb.Point{-122.2712, 37.8044}, false},
		{"antipode", orb.Point{57.58, -37.78}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SphericalContains(poly, tt.pt); got != tt.want {
				t.Errorf("expected %v for %v", tt.want, tt.pt)
			}
		})
	}
}

// Shapefiles wind shells clockwise; containment must not depend on the
// winding of the input rings.
func TestSphericalContainsClockwiseShell(t *testing.T) {
	cw := make(orb.Ring, len(sfRing))
	for i, p := range sfRing {
		cw[len(sfRing)-1-i] = p
	}
	poly := orb.Polygon{cw}

	if !SphericalContains(poly, orb.Point{-122.4193, 37.7793}) {
		t.Error("city hall should be contained regardless of shell winding")
	}
	if SphericalContains(poly, orb.Point{-122.2712, 37.8044}) {
		t.Error("oakland should not be contained regardless of shell winding")
	}
}

func TestSphericalContainsClockwiseHole(t *testing.T) {
	// Hole winding the same way as the shell, as sloppy data often does
	hole := orb.Ring{
		{-122.45, 37.75},
		{-122.40, 37.75},
		{-122.40, 37.78},
		{-122.45, 37.78},
		{-122.45, 37.75},
	}
	poly := orb.Polygon{sfRing, hole}

	if SphericalContains(poly, orb.Point{-122.43, 37.76}) {
		t.Error("point inside the hole should not be contained")
	}
	if !SphericalContains(poly, orb.Point{-122.50, 37.72}) {
		t.Error("point between shell and hole should be contained")
	}
}

func TestSphericalContainsHole(t *testing.T) {
	// Hole winds opposite to the shell
	hole := orb.Ring{
		{-122.45, 37.75},
		{-122.45, 37.78},
		{-122.40, 37.78},
		{-122.40, 37.75},
		{-122.45, 37.75},
	}
	poly := orb.Polygon{sfRing, hole}

	if SphericalContains(poly, orb.Point{-122.43, 37.76}) {
		t.Error("point inside the hole should not be contained")
	}
	if !SphericalContains(poly, orb.Point{-122.50, 37.72}) {
		t.Error("point between shell and hole should be contained")
	}
}

func TestSphericalMultiContains(t *testing.T) {
	mp := orb.MultiPolygon{
		{sfRing},
		{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}},
	}

	if !SphericalMultiContains(mp, orb.Point{0.5, 0.5}) {
		t.Error("point in the second polygon should be contained")
	}
	if SphericalMultiContains(mp, orb.Point{30, 30}) {
		t.Error("point outside every polygon should not be contained")
	}
}
