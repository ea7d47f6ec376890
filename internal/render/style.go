package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/SparkleMalone/SimpleFeatures/internal/config"
)

// Style controls how a layer is drawn.
type Style struct {
	Fill        color.NRGBA
	Stroke      color.NRGBA
	StrokeWidth float64
	PointRadius float64

	HasFill   bool
	HasStroke bool
}

// StyleFromConfig parses a styled-layer config entry.
func StyleFromConfig(sl config.StyledLayer) (Style, error) {
	s := Style{
		StrokeWidth: sl.StrokeWidth,
		PointRadius: sl.PointRadius,
	}
	if s.StrokeWidth <= 0 {
		s.StrokeWidth = 1
	}
	if s.PointRadius <= 0 {
		s.PointRadius = 3
	}

	if sl.Fill != "" {
		c, err := ParseHexColor(sl.Fill)
		if err != nil {
			return Style{}, fmt.Errorf("layer %q fill: %w", sl.Layer, err)
		}
		s.Fill = c
		s.HasFill = true
	}
	if sl.Stroke != "" {
		c, err := ParseHexColor(sl.Stroke)
		if err != nil {
			return Style{}, fmt.Errorf("layer %q stroke: %w", sl.Layer, err)
		}
		s.Stroke = c
		s.HasStroke = true
	}
	if !s.HasFill && !s.HasStroke {
		return Style{}, fmt.Errorf("layer %q has neither fill nor stroke", sl.Layer)
	}

	return s, nil
}

// ParseHexColor parses #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
	}

	c := color.NRGBA{A: 0xff}
	if len(h) == 8 {
		c.A = uint8(v)
		v >>= 8
	}
	c.B = uint8(v)
	c.G = uint8(v >> 8)
	c.R = uint8(v >> 16)
	return c, nil
}
