package starmap

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// TextAlign controls horizontal text alignment around the anchor point.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // anchor is the left edge
	TextAlignCenter                  // anchor is the horizontal centre
	TextAlignRight                   // anchor is the right edge
)

// Surface is the host drawing target. Coordinates are surface pixels with
// the origin at the top-left. Text is anchored at its baseline.
type Surface interface {
	Size() (width, height int)
	Fill(c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	// StrokeSegments strokes all segments as one path.
	StrokeSegments(segs []Segment, width float64, c color.Color)
	DrawText(s string, x, y, size float64, align TextAlign, c color.Color)
}

// maxSegmentsPerBatch keeps a stroked batch under the uint16 index limit of
// DrawTriangles.
const maxSegmentsPerBatch = 2048

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenSurface draws onto an *ebiten.Image with the vector and text/v2
// packages.
type EbitenSurface struct {
	dst *ebiten.Image

	faceSource *text.GoTextFaceSource
	faces      map[float64]*text.GoTextFace

	vs   []ebiten.Vertex
	is   []uint16
	path vector.Path
}

// NewEbitenSurface creates a surface for dst. The target can be swapped each
// frame with SetTarget without losing cached faces or vertex buffers.
func NewEbitenSurface(dst *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{dst: dst, faces: make(map[float64]*text.GoTextFace)}
}

// SetTarget changes the image drawn to.
func (s *EbitenSurface) SetTarget(dst *ebiten.Image) {
	s.dst = dst
}

// Target returns the image drawn to.
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.dst
}

func (s *EbitenSurface) Size() (int, int) {
	b := s.dst.Bounds()
	return b.Dx(), b.Dy()
}

func (s *EbitenSurface) Fill(c color.Color) {
	s.dst.Fill(c)
}

func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), c, true)
}

func (s *EbitenSurface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

func (s *EbitenSurface) StrokeSegments(segs []Segment, width float64, c color.Color) {
	for len(segs) > 0 {
		n := min(len(segs), maxSegmentsPerBatch)
		s.strokeBatch(segs[:n], width, c)
		segs = segs[n:]
	}
}

func (s *EbitenSurface) strokeBatch(segs []Segment, width float64, c color.Color) {
	s.path = vector.Path{}
	for _, seg := range segs {
		s.path.MoveTo(float32(seg.X0), float32(seg.Y0))
		s.path.LineTo(float32(seg.X1), float32(seg.Y1))
	}
	s.vs, s.is = s.path.AppendVerticesAndIndicesForStroke(s.vs[:0], s.is[:0], &vector.StrokeOptions{
		Width: float32(width),
	})

	r, g, b, a := c.RGBA()
	cr := float32(r) / 0xffff
	cg := float32(g) / 0xffff
	cb := float32(b) / 0xffff
	ca := float32(a) / 0xffff
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = cr
		s.vs[i].ColorG = cg
		s.vs[i].ColorB = cb
		s.vs[i].ColorA = ca
	}
	s.dst.DrawTriangles(s.vs, s.is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (s *EbitenSurface) DrawText(str string, x, y, size float64, align TextAlign, c color.Color) {
	face := s.face(size)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.ColorScale.ScaleWithColor(c)
	switch align {
	case TextAlignCenter:
		op.PrimaryAlign = text.AlignCenter
	case TextAlignRight:
		op.PrimaryAlign = text.AlignEnd
	default:
		op.PrimaryAlign = text.AlignStart
	}
	text.Draw(s.dst, str, face, op)
}

// face returns a cached Go Regular face near the given size. It returns nil
// when the embedded font cannot be parsed, which drops labels rather than
// failing the frame.
func (s *EbitenSurface) face(size float64) *text.GoTextFace {
	// Label sizes follow the zoom; half-point steps bound the cache.
	size = math.Round(size*2) / 2
	if f, ok := s.faces[size]; ok {
		return f
	}
	if s.faceSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil
		}
		s.faceSource = src
	}
	f := &text.GoTextFace{Source: s.faceSource, Size: size}
	s.faces[size] = f
	return f
}
