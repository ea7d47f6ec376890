// Load a point CSV and a polygon GeoJSON, then look at what's inside.
//
// Run from the repository root:
//
//	go run ./docs/examples/01-load-and-inspect
package main

import (
	"fmt"
	"log"

	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
)

func main() {
	stations, err := dataset.Load("testdata/stations.csv", 4326, dataset.Options{})
	if err != nil {
		log.Fatal(err)
	}

	districts, err := dataset.Load("testdata/districts.geojson", 4326, dataset.Options{})
	if err != nil {
		log.Fatal(err)
	}

	// Every dataset is a collection of simple features: a geometry plus
	// attribute data, tagged with the CRS the coordinates live in.
	fmt.Printf("stations:  %d features, EPSG:%d\n", stations.Len(), stations.EPSG)
	fmt.Printf("districts: %d features, EPSG:%d\n", districts.Len(), districts.EPSG)

	// The bound is the smallest axis-aligned box around all features.
	b := stations.Bound()
	fmt.Printf("station bound: %.4f %.4f -> %.4f %.4f\n",
		b.Min[0], b.Min[1], b.Max[0], b.Max[1])

	// Attributes came along from the CSV columns and GeoJSON properties.
	for key, kind := range districts.AttributeSchema() {
		fmt.Printf("district attribute %q is a %s\n", key, kind)
	}

	for _, f := range districts.Features {
		fmt.Printf("  %v (%s)\n", f.Properties["name"], f.Geometry.GeoJSONType())
	}
}
