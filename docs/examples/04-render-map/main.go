// Draw the districts and stations onto a PNG map.
//
// Layers are plotted back to front: district polygons first, station
// points on top. Geographic layers are projected to web mercator before
// drawing so the map keeps its shape.
//
// Run from the repository root:
//
//	go run ./docs/examples/04-render-map
package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
	"github.com/SparkleMalone/SimpleFeatures/internal/render"
)

func main() {
	districts, err := dataset.Load("testdata/districts.geojson", 4326, dataset.Options{})
	if err != nil {
		log.Fatal(err)
	}
	stations, err := dataset.Load("testdata/stations.csv", 4326, dataset.Options{})
	if err != nil {
		log.Fatal(err)
	}

	layers := []render.StyledCollection{
		{
			Collection: districts,
			Style: render.Style{
				Fill:        color.NRGBA{R: 0xd9, G: 0xe8, B: 0xf5, A: 0xff},
				Stroke:      color.NRGBA{R: 0x4a, G: 0x78, B: 0xa8, A: 0xff},
				StrokeWidth: 2,
				HasFill:     true,
				HasStroke:   true,
			},
		},
		{
			Collection: stations,
			Style: render.Style{
				Fill:        color.NRGBA{R: 0xd6, G: 0x36, B: 0x2c, A: 0xff},
				PointRadius: 5,
				HasFill:     true,
			},
		},
	}

	img, err := render.Plot(layers, render.Options{Width: 800, Height: 600})
	if err != nil {
		log.Fatal(err)
	}

	if err := render.Save("map.png", img); err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote map.png")
}
