package starmap

const (
	// DefaultMaxObjects is the occupancy above which a node splits.
	DefaultMaxObjects = 10
	// DefaultMaxLevels caps the tree depth. Nodes at this level never split.
	DefaultMaxLevels = 5
)

// Quadrant order of a node's four children.
const (
	quadNW = iota
	quadNE
	quadSW
	quadSE
)

const allQuadrants = 1<<quadNW | 1<<quadNE | 1<<quadSW | 1<<quadSE

// qtNode is one cell of the arena. Children are the four consecutive nodes
// starting at first, in NW, NE, SW, SE order; first < 0 marks a leaf.
type qtNode struct {
	bounds Rect
	level  int
	first  int32
	items  []int32
}

// Quadtree is a hierarchical spatial index over Objects.
//
// Nodes live in a flat arena addressed by index, so a rebuild truncates the
// arena and reuses the per-node item slices. An object whose bounds straddle
// a split line is stored in every child quadrant it touches; Retrieve
// deduplicates. The tree is not safe for concurrent use: Retrieve stamps
// items to deduplicate them.
type Quadtree struct {
	maxObjects int
	maxLevels  int

	nodes []qtNode

	objects []*Object
	bounds  []Rect // cached Object.Bounds, parallel to objects

	stamps []uint32
	query  uint32
}

// NewQuadtree creates an empty tree covering bounds. Non-positive limits
// fall back to DefaultMaxObjects and DefaultMaxLevels.
func NewQuadtree(bounds Rect, maxObjects, maxLevels int) *Quadtree {
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}
	if maxLevels <= 0 {
		maxLevels = DefaultMaxLevels
	}
	q := &Quadtree{
		maxObjects: maxObjects,
		maxLevels:  maxLevels,
	}
	q.reset(bounds)
	return q
}

// reset truncates the arena to a single empty root.
func (q *Quadtree) reset(bounds Rect) {
	q.nodes = q.nodes[:0]
	q.addNode(bounds, 0)
	clear(q.objects)
	q.objects = q.objects[:0]
	q.bounds = q.bounds[:0]
	q.stamps = q.stamps[:0]
	q.query = 0
}

// addNode appends a leaf to the arena, reusing a truncated slot's item
// storage when one is available.
func (q *Quadtree) addNode(bounds Rect, level int) int32 {
	idx := len(q.nodes)
	if idx < cap(q.nodes) {
		q.nodes = q.nodes[:idx+1]
		n := &q.nodes[idx]
		n.bounds = bounds
		n.level = level
		n.first = -1
		n.items = n.items[:0]
	} else {
		q.nodes = append(q.nodes, qtNode{bounds: bounds, level: level, first: -1})
	}
	return int32(idx)
}

// Clear removes every object but keeps the root bounds.
func (q *Quadtree) Clear() {
	q.reset(q.nodes[0].bounds)
}

// Rebuild clears the tree and inserts objs under a root covering bounds.
// It is the only supported way to change the indexed set.
func (q *Quadtree) Rebuild(bounds Rect, objs []*Object) {
	q.reset(bounds)
	for _, o := range objs {
		q.Insert(o)
	}
}

// Insert adds o to every leaf its bounds intersect, splitting nodes that
// exceed the occupancy limit.
func (q *Quadtree) Insert(o *Object) {
	if o == nil {
		return
	}
	item := int32(len(q.objects))
	q.objects = append(q.objects, o)
	q.bounds = append(q.bounds, o.Bounds())
	q.stamps = append(q.stamps, 0)
	q.insert(0, item)
}

func (q *Quadtree) insert(ni, item int32) {
	if first := q.nodes[ni].first; first >= 0 {
		mask := quadrants(q.nodes[ni].bounds, q.bounds[item])
		if mask != 0 {
			for i := int32(0); i < 4; i++ {
				if mask&(1<<i) != 0 {
					q.insert(first+i, item)
				}
			}
			return
		}
	}

	n := &q.nodes[ni]
	n.items = append(n.items, item)
	if len(n.items) <= q.maxObjects || n.level >= q.maxLevels {
		return
	}

	if n.first < 0 {
		q.split(ni)
	}

	// Children may grow the arena, so work from copies of the node fields.
	first := q.nodes[ni].first
	nb := q.nodes[ni].bounds
	items := q.nodes[ni].items
	kept := items[:0]
	for _, it := range items {
		mask := quadrants(nb, q.bounds[it])
		if mask == 0 {
			kept = append(kept, it)
			continue
		}
		for i := int32(0); i < 4; i++ {
			if mask&(1<<i) != 0 {
				q.insert(first+i, it)
			}
		}
	}
	q.nodes[ni].items = kept
}

// split gives node ni four equal children.
func (q *Quadtree) split(ni int32) {
	b := q.nodes[ni].bounds
	level := q.nodes[ni].level + 1
	w := b.Width / 2
	h := b.Height / 2

	first := q.addNode(Rect{X: b.X, Y: b.Y, Width: w, Height: h}, level)
	q.addNode(Rect{X: b.X + w, Y: b.Y, Width: w, Height: h}, level)
	q.addNode(Rect{X: b.X, Y: b.Y + h, Width: w, Height: h}, level)
	q.addNode(Rect{X: b.X + w, Y: b.Y + h, Width: w, Height: h}, level)
	q.nodes[ni].first = first
}

// quadrants returns a bitmask of the child quadrants of node bounds nb that
// r touches, using half-plane tests against the node's midpoints. The tests
// are inclusive so that a rectangle lying on a midpoint belongs to both sides.
func quadrants(nb, r Rect) uint8 {
	vm := nb.X + nb.Width/2
	hm := nb.Y + nb.Height/2

	west := r.X <= vm
	east := r.X+r.Width >= vm
	north := r.Y <= hm
	south := r.Y+r.Height >= hm

	var mask uint8
	if west && north {
		mask |= 1 << quadNW
	}
	if east && north {
		mask |= 1 << quadNE
	}
	if west && south {
		mask |= 1 << quadSW
	}
	if east && south {
		mask |= 1 << quadSE
	}
	return mask
}

// Retrieve returns every indexed object whose bounds intersect r, each once.
func (q *Quadtree) Retrieve(r Rect) []*Object {
	return q.AppendRetrieve(nil, r)
}

// AppendRetrieve is Retrieve appending to dst, for callers that reuse a
// buffer across frames.
func (q *Quadtree) AppendRetrieve(dst []*Object, r Rect) []*Object {
	if len(q.objects) == 0 {
		return dst
	}
	q.query++
	if q.query == 0 {
		clear(q.stamps)
		q.query = 1
	}
	return q.retrieve(0, r, dst)
}

func (q *Quadtree) retrieve(ni int32, r Rect, dst []*Object) []*Object {
	n := &q.nodes[ni]
	for _, it := range n.items {
		if q.stamps[it] == q.query || !q.bounds[it].Intersects(r) {
			continue
		}
		q.stamps[it] = q.query
		dst = append(dst, q.objects[it])
	}
	if n.first < 0 {
		return dst
	}
	mask := quadrants(n.bounds, r)
	if mask == 0 {
		mask = allQuadrants
	}
	for i := int32(0); i < 4; i++ {
		if mask&(1<<i) != 0 {
			dst = q.retrieve(n.first+i, r, dst)
		}
	}
	return dst
}

// Len returns the number of inserted objects.
func (q *Quadtree) Len() int {
	return len(q.objects)
}

// Bounds returns the root rectangle.
func (q *Quadtree) Bounds() Rect {
	return q.nodes[0].bounds
}

// NodeCount returns the number of nodes in the arena.
func (q *Quadtree) NodeCount() int {
	return len(q.nodes)
}

// Depth returns the deepest node level present.
func (q *Quadtree) Depth() int {
	d := 0
	for i := range q.nodes {
		d = max(d, q.nodes[i].level)
	}
	return d
}
