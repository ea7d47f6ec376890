// Package crs handles coordinate reference systems and reprojection.
//
// Projection math is delegated to orb/project; this package only keeps a
// small EPSG registry and routes transforms through WGS 84.
package crs

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxLatitude is the web mercator latitude cutoff. Coordinates beyond it
// are clamped before projecting to EPSG:3857.
const MaxLatitude = 85.05112878

// CRS describes a coordinate reference system registered by EPSG code.
type CRS struct {
	Code       int
	Name       string
	Geographic bool // coordinates are degrees of lon/lat

	forward orb.Projection // from WGS 84 lon/lat
	inverse orb.Projection // to WGS 84 lon/lat
}

var registry = map[int]*CRS{}

func init() {
	Register(&CRS{
		Code:       4326,
		Name:       "WGS 84",
		Geographic: true,
		forward:    identity,
		inverse:    identity,
	})
	Register(&CRS{
		Code: 3857,
		Name: "WGS 84 / Pseudo-Mercator",
		forward: func(p orb.Point) orb.Point {
			return project.WGS84.ToMercator(clampLatitude(p))
		},
		inverse: project.Mercator.ToWGS84,
	})
}

// Register adds or replaces a CRS in the registry.
func Register(c *CRS) {
	registry[c.Code] = c
}

// FromEPSG looks up a registered CRS by EPSG code.
func FromEPSG(code int) (*CRS, error) {
	c, ok := registry[code]
	if !ok {
		return nil, fmt.Errorf("EPSG:%d is not registered", code)
	}
	return c, nil
}

// String returns the usual EPSG:nnnn notation.
func (c *CRS) String() string {
	return fmt.Sprintf("EPSG:%d", c.Code)
}

// Transform reprojects a geometry from one CRS to another, routing
// through WGS 84. The input geometry is not modified.
func Transform(g orb.Geometry, from, to *CRS) orb.Geometry {
	if g == nil || from.Code == to.Code {
		return g
	}
	wgs84 := project.Geometry(orb.Clone(g), from.inverse)
	return project.Geometry(wgs84, to.forward)
}

func identity(p orb.Point) orb.Point {
	return p
}

func clampLatitude(p orb.Point) orb.Point {
	if p[1] > MaxLatitude {
		p[1] = MaxLatitude
	} else if p[1] < -MaxLatitude {
		p[1] = -MaxLatitude
	}
	return p
}
