package effects

import (
	"image"
	"math"
)

// Fit is the placement of a source inside a canvas under "contain" scaling.
type Fit struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Width   float64 // scaled source size
	Height  float64
}

// ContainFit scales src into dst preserving aspect ratio, centering it and
// leaving letterbox or pillarbox bars.
func ContainFit(srcW, srcH, dstW, dstH int) Fit {
	if srcW <= 0 || srcH <= 0 {
		return Fit{Scale: 1}
	}
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	w, h := float64(srcW)*scale, float64(srcH)*scale
	return Fit{
		Scale:   scale,
		OffsetX: (float64(dstW) - w) / 2,
		OffsetY: (float64(dstH) - h) / 2,
		Width:   w,
		Height:  h,
	}
}

// Rect returns the integer destination rectangle of the fit.
func (f Fit) Rect() image.Rectangle {
	return image.Rect(
		int(math.Round(f.OffsetX)),
		int(math.Round(f.OffsetY)),
		int(math.Round(f.OffsetX+f.Width)),
		int(math.Round(f.OffsetY+f.Height)),
	)
}

// Map converts a point in source pixels to canvas pixels.
func (f Fit) Map(x, y float64) (float64, float64) {
	return f.OffsetX + x*f.Scale, f.OffsetY + y*f.Scale
}

// CropRect returns the frameW/scale x frameH/scale rectangle centered on
// (cx, cy), shifted so it lies fully inside the frame.
func CropRect(frameW, frameH int, cx, cy, scale float64) image.Rectangle {
	if scale <= 1 || math.IsNaN(scale) {
		return image.Rect(0, 0, frameW, frameH)
	}
	w := int(math.Round(float64(frameW) / scale))
	h := int(math.Round(float64(frameH) / scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x := int(math.Round(cx - float64(w)/2))
	y := int(math.Round(cy - float64(h)/2))
	x = clampInt(x, 0, frameW-w)
	y = clampInt(y, 0, frameH-h)
	return image.Rect(x, y, x+w, y+h)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
