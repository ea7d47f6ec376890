// Package config handles the workbench configuration file: layer
// sources, transform operations, outputs and render settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration file structure.
type Config struct {
	Layers     []Layer     `yaml:"layers"`
	Operations []Operation `yaml:"operations,omitempty"`
	Outputs    []Output    `yaml:"outputs,omitempty"`
	Render     *Render     `yaml:"render,omitempty"`
}

// Layer declares a dataset to load.
type Layer struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	EPSG   int    `yaml:"epsg,omitempty"` // defaults to 4326

	// CSV point sources only
	LonColumn string `yaml:"lon_column,omitempty"`
	LatColumn string `yaml:"lat_column,omitempty"`
}

// Operation is a single transform step. Kind selects the operation;
// the remaining fields are kind-specific.
type Operation struct {
	Kind   string `yaml:"op"`
	Input  string `yaml:"input"`
	Output string `yaml:"output,omitempty"` // defaults to Input (in place)

	EPSG      int     `yaml:"epsg,omitempty"`       // reproject
	Distance  float64 `yaml:"distance,omitempty"`   // buffer
	Tolerance float64 `yaml:"tolerance,omitempty"`  // simplify
	Other     string  `yaml:"other,omitempty"`      // clip, select
	Predicate string  `yaml:"predicate,omitempty"`  // select
	Attribute string  `yaml:"attribute,omitempty"`  // select
	Equals    string  `yaml:"equals,omitempty"`     // select
	OnInvalid string  `yaml:"on_invalid,omitempty"` // validate: drop|fail
}

// Output writes a layer to a file after the operations ran.
type Output struct {
	Layer   string `yaml:"layer"`
	Path    string `yaml:"path"`
	Compact bool   `yaml:"compact,omitempty"`
}

// Render describes a plot of one or more layers.
type Render struct {
	Path       string        `yaml:"path"`
	Width      int           `yaml:"width,omitempty"`
	Height     int           `yaml:"height,omitempty"`
	Background string        `yaml:"background,omitempty"`
	Layers     []StyledLayer `yaml:"layers"`
}

// StyledLayer pairs a layer name with drawing style. Colors are hex
// strings (#RRGGBB or #RRGGBBAA).
type StyledLayer struct {
	Layer       string  `yaml:"layer"`
	Fill        string  `yaml:"fill,omitempty"`
	Stroke      string  `yaml:"stroke,omitempty"`
	StrokeWidth float64 `yaml:"stroke_width,omitempty"`
	PointRadius float64 `yaml:"point_radius,omitempty"`
}

var operationKinds = map[string]bool{
	"reproject": true,
	"buffer":    true,
	"clip":      true,
	"select":    true,
	"simplify":  true,
	"centroid":  true,
	"validate":  true,
}

// Load reads and parses the YAML configuration file from the specified
// path, then validates layer references.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks operation kinds and that every referenced layer is
// either declared or produced by an earlier operation.
func (c *Config) Validate() error {
	if len(c.Layers) == 0 {
		return fmt.Errorf("no layers declared")
	}

	known := make(map[string]bool)
	for _, l := range c.Layers {
		if l.Name == "" || l.Source == "" {
			return fmt.Errorf("layer needs both name and source")
		}
		if known[l.Name] {
			return fmt.Errorf("duplicate layer %q", l.Name)
		}
		known[l.Name] = true
	}

	for i, op := range c.Operations {
		if !operationKinds[op.Kind] {
			return fmt.Errorf("operation %d: unknown op %q", i, op.Kind)
		}
		if !known[op.Input] {
			return fmt.Errorf("operation %d (%s): unknown input layer %q", i, op.Kind, op.Input)
		}
		if op.Other != "" && !known[op.Other] {
			return fmt.Errorf("operation %d (%s): unknown layer %q", i, op.Kind, op.Other)
		}
		if op.Kind == "clip" && op.Other == "" {
			return fmt.Errorf("operation %d (clip): needs another layer to clip against", i)
		}
		if op.Kind == "select" && op.Other == "" && op.Attribute == "" {
			return fmt.Errorf("operation %d (select): needs other layer or attribute", i)
		}
		if op.Kind == "validate" && op.OnInvalid != "" && op.OnInvalid != "drop" && op.OnInvalid != "fail" {
			return fmt.Errorf("operation %d (validate): on_invalid must be drop or fail, got %q", i, op.OnInvalid)
		}
		if op.Output != "" {
			known[op.Output] = true
		}
	}

	for i, out := range c.Outputs {
		if !known[out.Layer] {
			return fmt.Errorf("output %d: unknown layer %q", i, out.Layer)
		}
	}

	if c.Render != nil {
		for i, sl := range c.Render.Layers {
			if !known[sl.Layer] {
				return fmt.Errorf("render layer %d: unknown layer %q", i, sl.Layer)
			}
		}
	}

	return nil
}

// LayerEPSG returns the declared EPSG of a layer, defaulting to 4326.
func (l Layer) LayerEPSG() int {
	if l.EPSG == 0 {
		return 4326
	}
	return l.EPSG
}
