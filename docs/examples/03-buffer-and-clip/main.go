// Build 400 meter service areas around stations and clip them to a district.
//
// Buffering needs a projected CRS, so the flow is: reproject to meters,
// buffer, then intersect the result with the district polygon.
//
// Run from the repository root:
//
//	go run ./docs/examples/03-buffer-and-clip
package main

import (
	"fmt"
	"log"

	"github.com/SparkleMalone/SimpleFeatures/internal/crs"
	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
	"github.com/SparkleMalone/SimpleFeatures/internal/topo"
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

	wgs84, _ := crs.FromEPSG(4326)
	mercator, _ := crs.FromEPSG(3857)

	sf := districts.Features[0].Geometry // San Francisco
	sfMeters := crs.Transform(sf, wgs84, mercator)

	for _, f := range stations.Features {
		point := crs.Transform(f.Geometry, wgs84, mercator)

		area, err := topo.Buffer(point, 400)
		if err != nil {
			log.Fatal(err)
		}

		clipped, err := topo.Intersection(area, sfMeters)
		if err == topo.ErrEmptyResult {
			fmt.Printf("%-24v outside the district\n", f.Properties["name"])
			continue
		}
		if err != nil {
			log.Fatal(err)
		}

		size, err := topo.Area(clipped)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%-24v service area %.0f m2\n", f.Properties["name"], size)
	}
}
