package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "stations.csv",
		"name,Lon,Lat,capacity\n"+
			"Market St,-122.4194,37.7749,25\n"+
			"Embarcadero,-122.3927,37.7955,19\n")

	c, err := Load(path, 4326, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 2 {
		t.Fatalf("expected 2 features, got %d", c.Len())
	}
	if c.EPSG != 4326 {
		t.Errorf("expected EPSG 4326, got %d", c.EPSG)
	}

	first := c.Features[0]
	pt, ok := first.Geometry.(orb.Point)
	if !ok {
		t.Fatalf("expected a point, got %T", first.Geometry)
	}
	if pt[0] != -122.4194 || pt[1] != 37.7749 {
		t.Errorf("wrong coordinates: %v", pt)
	}
	if first.Properties["name"] != "Market St" {
		t.Errorf("wrong name property: %v", first.Properties["name"])
	}
	if first.Properties["capacity"] != "25" {
		t.Errorf("wrong capacity property: %v", first.Properties["capacity"])
	}
}

func TestLoadCSVCustomColumns(t *testing.T) {
	path := writeTemp(t, "pts.csv", "x,y\n1.0,2.0\n")

	c, err := Load(path, 4326, Options{LonColumn: "x", LatColumn: "y"})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 feature, got %d", c.Len())
	}
}

func TestLoadCSVMissingColumns(t *testing.T) {
	path := writeTemp(t, "bad.csv", "a,b\n1,2\n")
	if _, err := Load(path, 4326, Options{}); err == nil {
		t.Error("expected an error for missing coordinate columns")
	}
}

func TestLoadCSVMalformedRows(t *testing.T) {
	content := "lon,lat\n1,2\nnot,numeric\n3,4\n"

	// Default limit: first malformed row is fatal
	path := writeTemp(t, "strict.csv", content)
	if _, err := Load(path, 4326, Options{}); err == nil {
		t.Error("expected an error with ErrorLimit 0")
	}

	// Raised limit: row is skipped, the rest loads
	c, err := Load(path, 4326, Options{ErrorLimit: 5})
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != 2 {
		t.Errorf("expected 2 features after skipping, got %d", c.Len())
	}
}

func TestSaveCSVRoundTrip(t *testing.T) {
	c := feature.NewCollection(4326)
	f := feature.NewFeature(orb.Point{-1.25, 50.5})
	f.Properties["name"] = "buoy"
	c.Append(f)

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := Save(path, c, Options{}); err != nil {
		t.Fatal(err)
	}

	back, err := Load(path, 4326, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if back.Len() != 1 {
		t.Fatalf("expected 1 feature, got %d", back.Len())
	}
	pt := back.Features[0].Geometry.(orb.Point)
	if pt[0] != -1.25 || pt[1] != 50.5 {
		t.Errorf("coordinates drifted: %v", pt)
	}
	if back.Features[0].Properties["name"] != "buoy" {
		t.Error("property lost in round trip")
	}
}

func TestSaveCSVRejectsPolygons(t *testing.T) {
	c := feature.NewCollection(4326)
	c.Append(feature.NewFeature(orb.Polygon{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}))

	if err := Save(filepath.Join(t.TempDir(), "out.csv"), c, Options{}); err == nil {
		t.Error("expected an error writing polygons to CSV")
	}
}

func TestUnsupportedExtensions(t *testing.T) {
	if _, err := Load("data.gpkg", 4326, Options{}); err == nil {
		t.Error("expected an error for an unsupported input extension")
	}
	if err := Save("data.gpkg", feature.NewCollection(4326), Options{}); err == nil {
		t.Error("expected an error for an unsupported output extension")
	}
}
