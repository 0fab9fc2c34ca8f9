package starmap

import "math"

// DefaultHitTolerance is the pick radius in screen pixels.
const DefaultHitTolerance = 30.0

// hitTester resolves surface positions to objects. It owns a reusable
// candidate buffer so pointer moves do not allocate.
type hitTester struct {
	tolerance float64
	buf       []*Object
}

// HitTest returns the object nearest to the surface point (sx, sy) whose
// centre lies within tolerance screen pixels, or nil. The tolerance is
// converted to world units by dividing by the zoom, so the pick radius stays
// constant on screen. Ties go to the first candidate the index returns.
func HitTest(tree *Quadtree, v *Viewport, sx, sy, tolerance float64) *Object {
	var ht hitTester
	ht.tolerance = tolerance
	return ht.resolve(tree, v, sx, sy)
}

func (ht *hitTester) resolve(tree *Quadtree, v *Viewport, sx, sy float64) *Object {
	if tree == nil || v == nil || v.Zoom <= 0 {
		return nil
	}
	wx, wy := v.ScreenToWorld(sx, sy)
	tol := ht.tolerance / v.Zoom

	ht.buf = tree.AppendRetrieve(ht.buf[:0], RectAround(wx, wy, tol))

	var best *Object
	bestDist := math.Inf(1)
	for _, o := range ht.buf {
		d := math.Hypot(o.X-wx, o.Y-wy)
		if d <= tol && d < bestDist {
			best = o
			bestDist = d
		}
	}
	clear(ht.buf)
	return best
}
