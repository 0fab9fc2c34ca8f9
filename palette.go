package starmap

import (
	"image/color"

	"github.com/cespare/xxhash/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// OwnerPalette is the fixed set of colours owned systems are drawn in.
var OwnerPalette = []color.RGBA{
	mustHex("#4f46e5"), // indigo
	mustHex("#dc2626"), // red
	mustHex("#059669"), // emerald
	mustHex("#d97706"), // amber
	mustHex("#7c3aed"), // violet
}

var (
	ColorBackground = mustHex("#000000")
	ColorNeutral    = mustHex("#888888")
	ColorSelected   = mustHex("#fbbf24")
	ColorHovered    = mustHex("#f59e0b")
	ColorConnection = mustHex("#333333")
	ColorLabel      = mustHex("#ffffff")
)

// OwnerColor returns the palette colour for an owner id, or ColorNeutral for
// an unowned system. The mapping is a stable hash, so a player keeps the
// same colour across sessions and galaxies.
func OwnerColor(ownerID string) color.RGBA {
	if ownerID == "" {
		return ColorNeutral
	}
	return OwnerPalette[xxhash.Sum64String(ownerID)%uint64(len(OwnerPalette))]
}

// stateColor picks the fill for an object given its selection state.
func stateColor(base color.RGBA, selected, hovered bool) color.RGBA {
	switch {
	case selected:
		return ColorSelected
	case hovered:
		return ColorHovered
	default:
		return base
	}
}

func mustHex(s string) color.RGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("starmap: bad palette colour " + s + ": " + err.Error())
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
