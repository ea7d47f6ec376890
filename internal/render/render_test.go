package render

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"

	"github.com/SparkleMalone/SimpleFeatures/internal/config"
	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#ff0000", want: color.NRGBA{R: 0xff, A: 0xff}},
		{in: "1f77b4", want: color.NRGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}},
		{in: "#00ff0080", want: color.NRGBA{G: 0xff, A: 0x80}},
		{in: "#abc", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStyleFromConfig(t *testing.T) {
	s, err := StyleFromConfig(config.StyledLayer{Layer: "a", Fill: "#ff0000"})
	if err != nil {
		t.Fatal(err)
	}
	if !s.HasFill || s.HasStroke {
		t.Error("expected fill only")
	}
	if s.StrokeWidth != 1 || s.PointRadius != 3 {
		t.Errorf("defaults not applied: %+v", s)
	}

	if _, err := StyleFromConfig(config.StyledLayer{Layer: "a"}); err == nil {
		t.Error("expected an error for a style with neither fill nor stroke")
	}
}

func TestPlotFillsPolygon(t *testing.T) {
	c := feature.NewCollection(3857)
	c.Append(feature.NewFeature(orb.Polygon{{{0, 0}, {100, 0}, {100, 100}, {0, 100}, {0, 0}}}))

	red := color.NRGBA{R: 0xff, A: 0xff}
	img, err := Plot([]StyledCollection{
		{Collection: c, Style: Style{Fill: red, HasFill: true}},
	}, Options{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}

	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 100 {
		t.Fatalf("wrong image size: %v", b)
	}

	// The polygon covers the frame center: red fill over white background
	r, g, _, _ := img.At(50, 50).RGBA()
	if r < 0x8000 || g > 0x4000 {
		t.Error("polygon interior not filled")
	}
}

func TestPlotTransparentBackground(t *testing.T) {
	c := feature.NewCollection(3857)
	c.Append(feature.NewFeature(orb.Polygon{{{40, 40}, {60, 40}, {60, 60}, {40, 60}, {40, 40}}}))

	img, err := Plot([]StyledCollection{
		{Collection: c, Style: Style{Fill: color.NRGBA{R: 0xff, A: 0xff}, HasFill: true}},
	}, Options{Width: 100, Height: 100, Background: color.NRGBA{}, HasBackground: true})
	if err != nil {
		t.Fatal(err)
	}

	// Corners stay fully transparent instead of falling back to white
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Errorf("expected a transparent corner, alpha %d", a)
	}
	if _, _, _, a := img.At(50, 50).RGBA(); a == 0 {
		t.Error("polygon interior should still be opaque")
	}
}

func TestPlotGeographicLayer(t *testing.T) {
	// A narrow lon/lat box at high latitude; mercator projection should
	// still produce a drawable, non-empty plot.
	c := feature.NewCollection(4326)
	c.Append(feature.NewFeature(orb.Polygon{{
		{10, 60}, {11, 60}, {11, 60.5}, {10, 60.5}, {10, 60},
	}}))

	img, err := Plot([]StyledCollection{
		{Collection: c, Style: Style{Fill: color.NRGBA{B: 0xff, A: 0xff}, HasFill: true}},
	}, Options{Width: 64, Height: 64})
	if err != nil {
		t.Fatal(err)
	}
	if r, _, b, _ := img.At(32, 32).RGBA(); b < 0x8000 || r > 0x4000 {
		t.Error("projected polygon not drawn")
	}
}

func TestPlotEmpty(t *testing.T) {
	if _, err := Plot(nil, Options{}); err == nil {
		t.Error("expected an error with no layers")
	}

	empty := feature.NewCollection(4326)
	_, err := Plot([]StyledCollection{
		{Collection: empty, Style: Style{HasFill: true}},
	}, Options{})
	if err == nil {
		t.Error("expected an error with only empty layers")
	}
}

func TestSave(t *testing.T) {
	c := feature.NewCollection(3857)
	c.Append(feature.NewFeature(orb.Point{0, 0}))

	img, err := Plot([]StyledCollection{
		{Collection: c, Style: Style{Fill: color.NRGBA{A: 0xff}, HasFill: true, PointRadius: 2}},
	}, Options{Width: 32, Height: 32})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, name := range []string{"map.png", "map.webp"} {
		path := filepath.Join(dir, name)
		if err := Save(path, img); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			t.Errorf("%s not written", name)
		}
	}

	if err := Save(filepath.Join(dir, "map.gif"), img); err == nil {
		t.Error("expected an error for an unsupported extension")
	}
}
