// Package render plots feature layers onto raster images.
//
// Geometry is rasterized with x/image/vector at double resolution, then
// downscaled with Catmull-Rom for clean anti-aliased edges. Output is
// PNG or WebP depending on the file extension.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog/log"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/SparkleMalone/SimpleFeatures/internal/crs"
	"github.com/SparkleMalone/SimpleFeatures/internal/feature"
)

// StyledCollection pairs a layer with its drawing style.
type StyledCollection struct {
	Collection *feature.Collection
	Style      Style
}

// Options controls the output image. Background defaults to white;
// HasBackground marks it as set so a transparent background sticks.
type Options struct {
	Width         int
	Height        int
	Background    color.NRGBA
	HasBackground bool
	Padding       float64 // fraction of the larger bound side, default 0.05
}

const supersample = 2

// Plot renders the layers into a single image. Geographic layers are
// projected to web mercator first so plots keep their shape.
func Plot(layers []StyledCollection, opts Options) (image.Image, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("nothing to plot")
	}
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 768
	}
	if opts.Padding <= 0 {
		opts.Padding = 0.05
	}

	projected, bound, err := projectLayers(layers)
	if err != nil {
		return nil, err
	}

	w := opts.Width * supersample
	h := opts.Height * supersample

	tr := fitBound(bound, w, h, opts.Padding)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	if opts.HasBackground {
		bg = opts.Background
	}
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, layer := range projected {
		for _, f := range layer.Collection.Features {
			drawGeometry(img, f.Geometry, layer.Style, tr)
		}
	}

	// Downscale to target size
	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	return out, nil
}

// Save encodes the image as PNG or WebP based on the path extension.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return png.Encode(f, img)
	case ".webp":
		return webp.Encode(f, img, &webp.Options{Lossless: false, Quality: 90})
	default:
		return fmt.Errorf("unsupported image extension %q", ext)
	}
}

// projectLayers reprojects geographic layers to web mercator and returns
// the union bound of everything to be drawn.
func projectLayers(layers []StyledCollection) ([]StyledCollection, orb.Bound, error) {
	wgs84, err := crs.FromEPSG(4326)
	if err != nil {
		return nil, orb.Bound{}, err
	}
	mercator, err := crs.FromEPSG(3857)
	if err != nil {
		return nil, orb.Bound{}, err
	}

	out := make([]StyledCollection, 0, len(layers))
	var bound orb.Bound
	first := true

	for _, layer := range layers {
		c := layer.Collection
		if c.Len() == 0 {
			log.Warn().Msg("Skipping empty layer in plot")
			continue
		}

		if c.EPSG == 4326 {
			pc := feature.NewCollection(3857)
			for _, f := range c.Features {
				nf := f.Clone()
				nf.Geometry = crs.Transform(f.Geometry, wgs84, mercator)
				pc.Append(nf)
			}
			c = pc
		}

		if first {
			bound = c.Bound()
			first = false
		} else {
			bound = bound.Union(c.Bound())
		}
		out = append(out, StyledCollection{Collection: c, Style: layer.Style})
	}

	if first {
		return nil, orb.Bound{}, fmt.Errorf("all layers are empty")
	}
	return out, bound, nil
}

// transform maps world coordinates to pixel coordinates.
type transform struct {
	scale  float64
	ox, oy float64
	height float64
}

func fitBound(b orb.Bound, w, h int, padding float64) transform {
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}

	pad := padding * math.Max(dx, dy)
	dx += 2 * pad
	dy += 2 * pad

	scale := math.Min(float64(w)/dx, float64(h)/dy)

	// Center the data in the frame
	ox := b.Min[0] - pad - (float64(w)/scale-dx)/2
	oy := b.Min[1] - pad - (float64(h)/scale-dy)/2

	return transform{scale: scale, ox: ox, oy: oy, height: float64(h)}
}

func (t transform) apply(p orb.Point) (float32, float32) {
	x := (p[0] - t.ox) * t.scale
	y := t.height - (p[1]-t.oy)*t.scale // image y grows downward
	return float32(x), float32(y)
}

func drawGeometry(img *image.RGBA, g orb.Geometry, style Style, tr transform) {
	switch gt := g.(type) {
	case orb.Point:
		drawPoint(img, gt, style, tr)
	case orb.MultiPoint:
		for _, p := range gt {
			drawPoint(img, p, style, tr)
		}
	case orb.LineString:
		if style.HasStroke {
			strokeLine(img, gt, style, tr)
		}
	case orb.MultiLineString:
		for _, ls := range gt {
			drawGeometry(img, ls, style, tr)
		}
	case orb.Ring:
		drawGeometry(img, orb.Polygon{gt}, style, tr)
	case orb.Polygon:
		drawPolygon(img, gt, style, tr)
	case orb.MultiPolygon:
		for _, poly := range gt {
			drawPolygon(img, poly, style, tr)
		}
	case orb.Bound:
		drawPolygon(img, orb.Polygon{gt.ToRing()}, style, tr)
	case orb.Collection:
		for _, member := range gt {
			drawGeometry(img, member, style, tr)
		}
	}
}

// drawPolygon fills shell and holes in one path; holes wind opposite to
// the shell, so their coverage cancels out in the rasterizer.
func drawPolygon(img *image.RGBA, poly orb.Polygon, style Style, tr transform) {
	if style.HasFill {
		z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
		z.DrawOp = draw.Over
		for _, ring := range poly {
			if len(ring) < 3 {
				continue
			}
			addRing(z, ring, tr)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(style.Fill), image.Point{})
	}

	if style.HasStroke {
		for _, ring := range poly {
			strokeLine(img, orb.LineString(ring), style, tr)
		}
	}
}

func addRing(z *vector.Rasterizer, ring orb.Ring, tr transform) {
	x, y := tr.apply(ring[0])
	z.MoveTo(x, y)
	for _, p := range ring[1:] {
		x, y = tr.apply(p)
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// strokeLine draws each segment as a filled quad with round joins.
func strokeLine(img *image.RGBA, line orb.LineString, style Style, tr transform) {
	if len(line) < 2 {
		return
	}

	half := float32(style.StrokeWidth * supersample / 2)
	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over

	px, py := tr.apply(line[0])
	for _, p := range line[1:] {
		qx, qy := tr.apply(p)

		dx, dy := qx-px, qy-py
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length > 0 {
			nx, ny := -dy/length*half, dx/length*half
			z.MoveTo(px+nx, py+ny)
			z.LineTo(qx+nx, qy+ny)
			z.LineTo(qx-nx, qy-ny)
			z.LineTo(px-nx, py-ny)
			z.ClosePath()
		}

		addCircle(z, qx, qy, half)
		px, py = qx, qy
	}
	x0, y0 := tr.apply(line[0])
	addCircle(z, x0, y0, half)

	z.Draw(img, img.Bounds(), image.NewUniform(style.Stroke), image.Point{})
}

func drawPoint(img *image.RGBA, p orb.Point, style Style, tr transform) {
	x, y := tr.apply(p)
	r := float32(style.PointRadius * supersample)

	c := style.Fill
	if !style.HasFill {
		c = style.Stroke
	}

	z := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	z.DrawOp = draw.Over
	addCircle(z, x, y, r)
	z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
}

// addCircle approximates a circle with four cubic Bézier arcs.
func addCircle(z *vector.Rasterizer, cx, cy, r float32) {
	const kappa = 0.5522848

	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}
