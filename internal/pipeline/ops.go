package pipeline

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/crs"
	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
	"github.com/SparkleMalone/SimpleFeatures/internal/topo"
)

func reproject(input *feature.Collection, epsg int) (*feature.Collection, error) {
	from, err := crs.FromEPSG(input.EPSG)
	if err != nil {
		return nil, err
	}
	to, err := crs.FromEPSG(epsg)
	if err != nil {
		return nil, err
	}

	out := feature.NewCollection(epsg)
	for _, f := range input.Features {
		nf := f.Clone()
		nf.Geometry = crs.Transform(f.Geometry, from, to)
		out.Append(nf)
	}
	return out, nil
}

func buffer(input *feature.Collection, distance float64) (*feature.Collection, error) {
	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		buffered, err := topo.Buffer(f.Geometry, distance)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		nf := f.Clone()
		nf.Geometry = buffered
		out.Append(nf)
	}
	return out, nil
}

// clip intersects every input feature with the union of the overlapping
// clip features. The clip layer's R-tree prunes candidates first.
func clip(input, other *feature.Collection) (*feature.Collection, error) {
	idx := feature.BuildIndex(other)

	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		candidates := idx.Search(f.Geometry.Bound())
		if len(candidates) == 0 {
			continue
		}

		var clipped orb.Geometry
		for _, cand := range candidates {
			piece, err := topo.Intersection(f.Geometry, cand.Geometry)
			if errors.Is(err, topo.ErrEmptyResult) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("feature %s: %w", f.ID, err)
			}
			if clipped == nil {
				clipped = piece
				continue
			}
			clipped, err = topo.Union(clipped, piece)
			if err != nil {
				return nil, fmt.Errorf("feature %s: %w", f.ID, err)
			}
		}
		if clipped == nil {
			continue
		}

		nf := f.Clone()
		nf.Geometry = clipped
		out.Append(nf)
	}
	return out, nil
}

func selectAttribute(input *feature.Collection, attribute, equals string) *feature.Collection {
	return input.Filter(func(f *feature.Feature) bool {
		v, ok := f.Properties[attribute]
		if !ok {
			return false
		}
		return fmt.Sprintf("%v", v) == equals
	})
}

// selectSpatial keeps input features matching the predicate against any
// feature of the other layer. Point-in-polygon on a geographic layer is
// evaluated on the sphere.
func selectSpatial(input, other *feature.Collection, predicate string) (*feature.Collection, error) {
	name := predicate
	if name == "" {
		name = string(topo.Intersects)
	}
	pred, err := topo.ParsePredicate(name)
	if err != nil {
		return nil, err
	}

	idx := feature.BuildIndex(other)
	geographic := input.EPSG == 4326

	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		matched := false
		for _, cand := range idx.Search(f.Geometry.Bound()) {
			ok, err := match(pred, f.Geometry, cand.Geometry, geographic)
			if err != nil {
				return nil, fmt.Errorf("feature %s: %w", f.ID, err)
			}
			if ok {
				matched = true
				break
			}
		}
		if matched {
			out.Append(f)
		}
	}
	return out, nil
}

func match(pred topo.Predicate, g, other orb.Geometry, geographic bool) (bool, error) {
	if pred == topo.Within && geographic {
		if pt, ok := g.(orb.Point); ok {
			switch o := other.(type) {
			case orb.Polygon:
				return topo.SphericalContains(o, pt), nil
			case orb.MultiPolygon:
				return topo.SphericalMultiContains(o, pt), nil
			}
		}
	}
	return topo.Eval(pred, g, other)
}

func simplify(input *feature.Collection, tolerance float64) (*feature.Collection, error) {
	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		simplified, err := topo.Simplify(f.Geometry, tolerance)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		nf := f.Clone()
		nf.Geometry = simplified
		out.Append(nf)
	}
	return out, nil
}

func centroid(input *feature.Collection) (*feature.Collection, error) {
	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		center, err := topo.Centroid(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		nf := f.Clone()
		nf.Geometry = center
		out.Append(nf)
	}
	return out, nil
}

func validate(input *feature.Collection, onInvalid string) (*feature.Collection, error) {
	out := feature.NewCollection(input.EPSG)
	for _, f := range input.Features {
		ok, err := topo.Valid(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", f.ID, err)
		}
		if ok {
			out.Append(f)
			continue
		}
		if onInvalid == "fail" {
			return nil, fmt.Errorf("feature %s has invalid geometry", f.ID)
		}
		log.Warn().Str("feature", f.ID).Msg("Dropping invalid geometry")
	}
	return out, nil
}
