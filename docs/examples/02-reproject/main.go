// Reproject features between geographic and projected coordinates.
//
// Degrees of longitude are useless for measuring distance, so before any
// buffering or length math we move the data into Web Mercator (EPSG:3857),
// where coordinates are meters.
//
// Run from the repository root:
//
//	go run ./docs/examples/02-reproject
package main

import (
	"fmt"
	"log"

	"github.com/SparkleMalone/SimpleFeatures/internal/crs"
	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
)

func main() {
	stations, err := dataset.Load("testdata/stations.csv", 4326, dataset.Options{})
	if err != nil {
		log.Fatal(err)
	}

	wgs84, err := crs.FromEPSG(4326)
	if err != nil {
		log.Fatal(err)
	}
	mercator, err := crs.FromEPSG(3857)
	if err != nil {
		log.Fatal(err)
	}

	first := stations.Features[0]
	fmt.Printf("%v in %s: %v\n", first.Properties["name"], wgs84, first.Geometry)

	projected := crs.Transform(first.Geometry, wgs84, mercator)
	fmt.Printf("%v in %s: %v\n", first.Properties["name"], mercator, projected)

	// The transform is reversible, modulo floating point noise.
	back := crs.Transform(projected, mercator, wgs84)
	fmt.Printf("and back again: %v\n", back)
}
