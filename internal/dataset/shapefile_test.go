package dataset

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
)

func TestLoadShapefilePoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.shp")

	w, err := shp.Create(path, shp.POINT)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetFields([]shp.Field{
		shp.StringField("NAME", 25),
		shp.NumberField("CAPACITY", 10),
	}); err != nil {
		t.Fatal(err)
	}

	points := []shp.Point{
		{X: -122.4194, Y: 37.7749},
		{X: -122.3927, Y: 37.7955},
	}
	names := []string{"Market St", "Embarcadero"}
	for i := range points {
		w.Write(&points[i])
		if err := w.WriteAttribute(i, 0, names[i]); err != nil {
			t.Fatal(err)
		}
		if err := w.WriteAttribute(i, 1, 10+i); err != nil {
			t.Fatal(err)
		}
	}
	w.Close()

	c, err := Load(path, 4326, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 features, got %d", c.Len())
	}

	first := c.Features[0]
	pt, ok := first.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("expected a point, got %T", first.Geometry)
	}
	if pt[0] != -122.4194 || pt[1] != 37.7749 {
		t.Errorf("wrong coordinates: %v", pt)
	}
	if first.Properties["NAME"] != "Market St" {
		t.Errorf("wrong NAME attribute: %v", first.Properties["NAME"])
	}
	if first.Properties["CAPACITY"] != float64(10) {
		t.Errorf("numeric attribute not parsed: %v", first.Properties["CAPACITY"])
	}
}

func TestLoadShapefileNullShapes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nulls.shp")

	w, err := shp.Create(path, shp.NULL)
	if err != nil {
		t.Fatal(err)
	}
	w.Write(&shp.Null{})
	w.Write(&shp.Null{})
	w.Close()

	c, err := Load(path, 4326, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 0 {
		t.Errorf("NULL shapes should be skipped, got %d features", c.Len())
	}
}

func TestLoadShapefilePolygon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zones.shp")

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatal(err)
	}

	// Clockwise outer ring, the ESRI shell convention
	ring := []shp.Point{
		{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}, {X: 0, Y: 0},
	}
	poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{ring}))
	w.Write(&poly)
	w.Close()

	c, err := Load(path, 4326, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 feature, got %d", c.Len())
	}

	got, ok := c.Features[0].Geometry.(orb.Polygon)
	if !ok {
		t.Fatalf("expected a polygon, got %T", c.Features[0].Geometry)
	}
	if len(got) != 1 || len(got[0]) != 5 {
		t.Errorf("unexpected ring structure: %v", got)
	}
}

func TestPolygonGeometryHoles(t *testing.T) {
	// Clockwise shell, counter-clockwise hole
	shell := []orb.Point{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}
	hole := []orb.Point{{2, 2}, {8, 2}, {8, 8}, {2, 8}, {2, 2}}

	g := polygonGeometry([][]orb.Point{shell, hole})

	poly, ok := g.(orb.Polygon)
	if !ok {
		t.Fatalf("expected a single polygon, got %T", g)
	}
	if len(poly) != 2 {
		t.Fatalf("expected shell plus one hole, got %d rings", len(poly))
	}
}

func TestPolygonGeometryMultipleShells(t *testing.T) {
	a := []orb.Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}, {0, 0}}
	b := []orb.Point{{5, 5}, {5, 6}, {6, 6}, {6, 5}, {5, 5}}

	g := polygonGeometry([][]orb.Point{a, b})

	mp, ok := g.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("expected a multipolygon, got %T", g)
	}
	if len(mp) != 2 {
		t.Errorf("expected 2 polygons, got %d", len(mp))
	}
}
