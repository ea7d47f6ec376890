// Package pipeline runs the configured transform steps over loaded
// layers and writes the declared outputs.
package pipeline

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/SparkleMalone/SimpleFeatures/internal/config"
	"github.com/SparkleMalone/SimpleFeatures/internal/dataset"
	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// Runner holds the layers of one pipeline run.
type Runner struct {
	cfg    *config.Config
	layers map[string]*feature.Collection
}

// New creates a runner for a validated config.
func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:    cfg,
		layers: make(map[string]*feature.Collection),
	}
}

// Load reads every declared layer from its source file.
func (r *Runner) Load() error {
	for _, l := range r.cfg.Layers {
		opts := dataset.Options{LonColumn: l.LonColumn, LatColumn: l.LatColumn}
		c, err := dataset.Load(l.Source, l.LayerEPSG(), opts)
		if err != nil {
			return fmt.Errorf("layer %q: %w", l.Name, err)
		}

		log.Info().
			Str("layer", l.Name).
			Str("source", l.Source).
			Int("features", c.Len()).
			Int("epsg", c.EPSG).
			Msg("Layer loaded")

		r.layers[l.Name] = c
	}
	return nil
}

// Layer returns a loaded or derived layer by name.
func (r *Runner) Layer(name string) (*feature.Collection, bool) {
	c, ok := r.layers[name]
	return c, ok
}

// SetLayer registers a collection under a name, replacing any previous
// layer. Used by tests and by callers that build layers in memory.
func (r *Runner) SetLayer(name string, c *feature.Collection) {
	r.layers[name] = c
}

// Run executes the configured operations in order.
func (r *Runner) Run() error {
	for i, op := range r.cfg.Operations {
		input, ok := r.layers[op.Input]
		if !ok {
			return fmt.Errorf("operation %d (%s): layer %q not loaded", i, op.Kind, op.Input)
		}

		result, err := r.apply(op, input)
		if err != nil {
			return fmt.Errorf("operation %d (%s): %w", i, op.Kind, err)
		}

		name := op.Output
		if name == "" {
			name = op.Input
		}
		r.layers[name] = result

		log.Info().
			Str("op", op.Kind).
			Str("input", op.Input).
			Str("output", name).
			Int("in", input.Len()).
			Int("out", result.Len()).
			Msg("Operation applied")
	}
	return nil
}

func (r *Runner) apply(op config.Operation, input *feature.Collection) (*feature.Collection, error) {
	switch op.Kind {
	case "reproject":
		return reproject(input, op.EPSG)
	case "buffer":
		return buffer(input, op.Distance)
	case "clip":
		other, ok := r.layers[op.Other]
		if !ok {
			return nil, fmt.Errorf("layer %q not loaded", op.Other)
		}
		return clip(input, other)
	case "select":
		if op.Attribute != "" {
			return selectAttribute(input, op.Attribute, op.Equals), nil
		}
		other, ok := r.layers[op.Other]
		if !ok {
			return nil, fmt.Errorf("layer %q not loaded", op.Other)
		}
		return selectSpatial(input, other, op.Predicate)
	case "simplify":
		return simplify(input, op.Tolerance)
	case "centroid":
		return centroid(input)
	case "validate":
		return validate(input, op.OnInvalid)
	default:
		return nil, fmt.Errorf("unknown op %q", op.Kind)
	}
}

// WriteOutputs saves the configured output files.
func (r *Runner) WriteOutputs() error {
	for _, out := range r.cfg.Outputs {
		c, ok := r.layers[out.Layer]
		if !ok {
			return fmt.Errorf("output layer %q not loaded", out.Layer)
		}
		if err := dataset.Save(out.Path, c, dataset.Options{Compact: out.Compact}); err != nil {
			return fmt.Errorf("write %s: %w", out.Path, err)
		}
		log.Info().
			Str("layer", out.Layer).
			Str("path", out.Path).
			Int("features", c.Len()).
			Msg("Output written")
	}
	return nil
}
