package starmap

import (
	"strconv"

	"github.com/stellarlight/starmap/galaxy"
)

// Kind identifies the variant of an Object and selects its row in the
// capability table.
type Kind uint8

const (
	// KindPoint is a bare coordinate marker.
	KindPoint Kind = iota
	// KindStarSystem wraps a galaxy.StarSystem.
	KindStarSystem

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindStarSystem:
		return "starSystem"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

const (
	pointRadius      = 5.0 // world units, scaled by zoom
	starSystemRadius = 6.0 // screen pixels, independent of zoom
	selectionGap     = 4.0
	selectionWidth   = 2.0

	// labelZoom is the zoom above which labels are drawn.
	labelZoom     = 1.0
	labelBaseSize = 12.0
	labelMaxSize  = 16.0
	labelOffset   = 15.0

	connectionWidth = 1.0
)

// Object is one drawable, clickable unit on the map. It is a tagged variant:
// Kind selects the draw, bounds and label behaviour from a fixed table and
// System is set only for KindStarSystem.
//
// Objects are built once per data set and treated as immutable afterwards;
// a changed data set is a new slice of Objects and an index rebuild.
type Object struct {
	// ID is the identity used for selection, hover and connection lookups.
	ID   string
	Kind Kind
	// X and Y are the world position of the object's centre.
	X, Y float64

	// System is the backing domain entity of a KindStarSystem object. It is
	// shared with the galaxy, not copied.
	System *galaxy.StarSystem

	// OnActivate, when set, is called on a double activation of this object
	// in addition to the map's OnActivate handlers.
	OnActivate func(o *Object)

	// UserData is free for the host application.
	UserData any
}

// NewPoint creates a coordinate marker at (x, y).
func NewPoint(x, y float64) *Object {
	return &Object{
		ID:   "point-" + formatCoord(x) + "-" + formatCoord(y),
		Kind: KindPoint,
		X:    x,
		Y:    y,
	}
}

// NewStarSystemNode creates the object for s, positioned at its location.
func NewStarSystemNode(s *galaxy.StarSystem) *Object {
	return &Object{
		ID:     s.ID,
		Kind:   KindStarSystem,
		X:      s.LocationX,
		Y:      s.LocationY,
		System: s,
	}
}

// ObjectsFromGalaxy builds one object per star system. Nil systems are
// skipped. A nil galaxy yields an empty slice.
func ObjectsFromGalaxy(g *galaxy.Galaxy) []*Object {
	if g == nil {
		return nil
	}
	objs := make([]*Object, 0, len(g.StarSystems))
	for _, s := range g.StarSystems {
		if s == nil {
			continue
		}
		objs = append(objs, NewStarSystemNode(s))
	}
	return objs
}

// Bounds returns the axis-aligned world rectangle used for indexing and
// hit testing. It is larger than the drawn glyph.
func (o *Object) Bounds() Rect {
	return RectAround(o.X, o.Y, o.ops().halfExtent)
}

// Label returns the text drawn under the object when zoomed in.
func (o *Object) Label() string {
	if fn := o.ops().label; fn != nil {
		return fn(o)
	}
	return ""
}

// Connections returns the ids this object links to. Only star systems have
// connections.
func (o *Object) Connections() []string {
	if o.Kind != KindStarSystem || o.System == nil {
		return nil
	}
	return o.System.ConnectedSystems
}

// Draw renders the object at the precomputed screen position (sx, sy).
func (o *Object) Draw(s Surface, v *Viewport, sx, sy float64, selected, hovered bool) {
	if fn := o.ops().draw; fn != nil {
		fn(o, s, v, sx, sy, selected, hovered)
	}
}

func (o *Object) ops() *kindOps {
	if o.Kind >= kindCount {
		return &unknownOps
	}
	return &kindTable[o.Kind]
}

// kindOps is one row of the capability table.
type kindOps struct {
	halfExtent float64
	draw       func(o *Object, s Surface, v *Viewport, sx, sy float64, selected, hovered bool)
	label      func(o *Object) string
}

var kindTable = [kindCount]kindOps{
	KindPoint: {
		halfExtent: 5,
		draw:       drawPoint,
		label:      pointLabel,
	},
	KindStarSystem: {
		halfExtent: 20,
		draw:       drawStarSystem,
		label:      starSystemLabel,
	},
}

// unknownOps gives out-of-range kinds empty bounds and no drawing.
var unknownOps kindOps

func drawPoint(o *Object, s Surface, v *Viewport, sx, sy float64, selected, hovered bool) {
	r := pointRadius * v.Zoom
	s.FillCircle(sx, sy, r, stateColor(ColorNeutral, selected, hovered))
	drawLabel(s, v, pointLabel(o), sx, sy+r)
}

func drawStarSystem(o *Object, s Surface, v *Viewport, sx, sy float64, selected, hovered bool) {
	base := ColorNeutral
	if o.System != nil {
		base = OwnerColor(o.System.OwnerID)
	}
	s.FillCircle(sx, sy, starSystemRadius, stateColor(base, selected, hovered))
	if selected {
		s.StrokeCircle(sx, sy, starSystemRadius+selectionGap, selectionWidth, ColorSelected)
	}
	drawLabel(s, v, starSystemLabel(o), sx, sy+starSystemRadius)
}

// drawLabel draws centred text below a glyph whose bottom edge is at y.
func drawLabel(s Surface, v *Viewport, label string, x, y float64) {
	if v.Zoom <= labelZoom || label == "" {
		return
	}
	size := min(labelBaseSize*v.Zoom, labelMaxSize)
	s.DrawText(label, x, y+labelOffset, size, TextAlignCenter, ColorLabel)
}

func pointLabel(o *Object) string {
	return formatCoord(o.X) + "," + formatCoord(o.Y)
}

func starSystemLabel(o *Object) string {
	if o.System == nil {
		return o.ID
	}
	return o.System.Name
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Index maps object ids to objects. It is rebuilt together with the
// quadtree and used to resolve connection ids at draw time.
type Index struct {
	byID map[string]*Object
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{byID: make(map[string]*Object)}
}

// Rebuild replaces the contents with objs and returns the objects actually
// indexed. When two objects share an id the first wins and the later ones
// are returned in dups.
func (x *Index) Rebuild(objs []*Object) (kept, dups []*Object) {
	clear(x.byID)
	kept = make([]*Object, 0, len(objs))
	for _, o := range objs {
		if o == nil {
			continue
		}
		if _, ok := x.byID[o.ID]; ok {
			dups = append(dups, o)
			continue
		}
		x.byID[o.ID] = o
		kept = append(kept, o)
	}
	return kept, dups
}

// Lookup returns the object with the given id, or nil.
func (x *Index) Lookup(id string) *Object {
	return x.byID[id]
}

// Len returns the number of indexed objects.
func (x *Index) Len() int {
	return len(x.byID)
}
