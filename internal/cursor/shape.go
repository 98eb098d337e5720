package cursor

import (
	"image"
	"strings"
)

// Shape names a cursor glyph. The string form matches the asset file name.
type Shape string

const (
	Arrow      Shape = "arrow"
	Pointer    Shape = "pointer"
	Hand       Shape = "hand"
	Crosshair  Shape = "crosshair"
	IBeam      Shape = "ibeam"
	ResizeEW   Shape = "resize-ew"
	ResizeNS   Shape = "resize-ns"
	ResizeNWSE Shape = "resize-nwse"
	ResizeNESW Shape = "resize-nesw"
	Move       Shape = "move"
	NotAllowed Shape = "not-allowed"
)

// Shapes lists every shape that ships with an embedded glyph.
var Shapes = []Shape{
	Arrow, Pointer, Hand, Crosshair, IBeam,
	ResizeEW, ResizeNS, ResizeNWSE, ResizeNESW,
	Move, NotAllowed,
}

// ViewBox is the side of the square reference box hotspots are expressed in.
const ViewBox = 256

// Hotspots holds the click point of each glyph within the ViewBox.
var Hotspots = map[Shape]image.Point{
	Arrow:      {X: 56, Y: 32},
	Pointer:    {X: 100, Y: 16},
	Hand:       {X: 128, Y: 112},
	Crosshair:  {X: 128, Y: 128},
	IBeam:      {X: 128, Y: 128},
	ResizeEW:   {X: 128, Y: 128},
	ResizeNS:   {X: 128, Y: 128},
	ResizeNWSE: {X: 128, Y: 128},
	ResizeNESW: {X: 128, Y: 128},
	Move:       {X: 128, Y: 128},
	NotAllowed: {X: 128, Y: 128},
}

// aliases maps names used by capture tools onto our shapes.
var aliases = map[string]Shape{
	"default":      Arrow,
	"pointinghand": Pointer,
	"link":         Pointer,
	"openhand":     Hand,
	"closedhand":   Hand,
	"grab":         Hand,
	"grabbing":     Hand,
	"text":         IBeam,
	"i-beam":       IBeam,
	"cross":        Crosshair,
	"ew-resize":    ResizeEW,
	"col-resize":   ResizeEW,
	"ns-resize":    ResizeNS,
	"row-resize":   ResizeNS,
	"nwse-resize":  ResizeNWSE,
	"nesw-resize":  ResizeNESW,
	"all-scroll":   Move,
	"not_allowed":  NotAllowed,
	"no":           NotAllowed,
}

// ParseShape resolves a persisted shape tag. Unknown tags report false and
// return Arrow.
func ParseShape(s string) (Shape, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Arrow, true
	}
	for _, sh := range Shapes {
		if string(sh) == s {
			return sh, true
		}
	}
	if sh, ok := aliases[s]; ok {
		return sh, true
	}
	return Arrow, false
}

// HotspotAt scales the shape's hotspot to a glyph rendered at size pixels.
func HotspotAt(shape Shape, size int) image.Point {
	hot, ok := Hotspots[shape]
	if !ok {
		hot = image.Pt(ViewBox/2, ViewBox/2)
	}
	return hot.Mul(size).Div(ViewBox)
}
