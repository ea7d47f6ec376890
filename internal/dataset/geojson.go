package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paulmach/orb/geojson"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"

	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

func loadGeoJSON(path string, epsg int) (*feature.Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse GeoJSON %s: %w", path, err)
	}

	collection := feature.NewCollection(epsg)
	for i, gf := range fc.Features {
		ft := feature.NewFeature(gf.Geometry)
		ft.ID = fmt.Sprintf("%v", gf.ID)
		if gf.ID == nil {
			ft.ID = fmt.Sprintf("%d", i)
		}
		for k, v := range gf.Properties {
			ft.Properties[k] = v
		}
		collection.Append(ft)
	}

	return collection, nil
}

func saveGeoJSON(path string, c *feature.Collection, opts Options) error {
	fc := geojson.NewFeatureCollection()
	for _, ft := range c.Features {
		gf := geojson.NewFeature(ft.Geometry)
		gf.ID = ft.ID
		gf.Properties = ft.Properties
		fc.Append(gf)
	}

	var data []byte
	var err error
	if opts.Compact {
		data, err = json.Marshal(fc)
		if err == nil {
			m := minify.New()
			m.AddFunc("application/json", mjson.Minify)
			data, err = m.Bytes("application/json", data)
		}
	} else {
		data, err = json.MarshalIndent(fc, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
