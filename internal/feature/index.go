package feature

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Index is an R-tree over feature bounds. Searches may over-return:
// callers must re-test candidates with an exact predicate.
type Index struct {
	tree *rtreego.Rtree
}

type indexEntry struct {
	rect    rtreego.Rect
	feature *Feature
}

// Bounds implements rtreego.Spatial.
func (e *indexEntry) Bounds() rtreego.Rect {
	return e.rect
}

// BuildIndex indexes every feature of the collection by its bound.
func BuildIndex(c *Collection) *Index {
	tree := rtreego.NewTree(2, 25, 50)
	for _, f := range c.Features {
		if f.Geometry == nil {
			continue
		}
		tree.Insert(&indexEntry{
			rect:    rectFromBound(f.Geometry.Bound()),
			feature: f,
		})
	}
	return &Index{tree: tree}
}

// Search returns all features whose bound intersects b.
func (idx *Index) Search(b orb.Bound) []*Feature {
	matches := idx.tree.SearchIntersect(rectFromBound(b))
	features := make([]*Feature, 0, len(matches))
	for _, m := range matches {
		features = append(features, m.(*indexEntry).feature)
	}
	return features
}

func rectFromBound(b orb.Bound) rtreego.Rect {
	point := rtreego.Point{b.Min[0], b.Min[1]}

	// R-tree rects need non-zero extents, points get a tiny box
	const epsilon = 1e-9
	dx := b.Max[0] - b.Min[0]
	dy := b.Max[1] - b.Min[1]
	if dx < epsilon {
		dx = epsilon
	}
	if dy < epsilon {
		dy = epsilon
	}

	rect, _ := rtreego.NewRect(point, []float64{dx, dy})
	return rect
}
