package renderer

import (
	"sort"
	"strings"

	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/recording"
)

// ParsePathMode maps the configured cursor path name to a curve mode.
func ParsePathMode(s string) curve.PathMode {
	if strings.EqualFold(strings.TrimSpace(s), "bezier") {
		return curve.PathBezier
	}
	return curve.PathLinear
}

// bracket returns the index of the last keyframe at or before t, or -1.
func bracket(kfs []recording.CursorKeyframe, t float64) int {
	return sort.Search(len(kfs), func(i int) bool {
		return kfs[i].Timestamp > t
	}) - 1
}

// InterpolateCursor resolves the cursor position at t (ms).
//
// With no keyframes the cursor sits at the frame center; with one it never
// moves. Otherwise the bracketing pair is eased with the earlier keyframe's
// easing. When a keyframe exists on both sides of the pair the path is a
// Catmull-Rom spline, else a single arc-length segment. Times outside the
// keyframe range clamp to the boundary keyframe.
func InterpolateCursor(kfs []recording.CursorKeyframe, t float64, mode curve.PathMode, width, height int) curve.Point {
	switch len(kfs) {
	case 0:
		return curve.Point{X: float64(width) / 2, Y: float64(height) / 2}
	case 1:
		return kfs[0].Point()
	}

	i := bracket(kfs, t)
	if i < 0 {
		return kfs[0].Point()
	}
	if i >= len(kfs)-1 {
		return kfs[len(kfs)-1].Point()
	}

	prev, next := kfs[i], kfs[i+1]
	span := next.Timestamp - prev.Timestamp
	if span <= 0 {
		return next.Point()
	}
	progress := (t - prev.Timestamp) / span
	if progress < 0 {
		progress = 0
	} else if progress > 1 {
		progress = 1
	}

	if i > 0 && i+2 < len(kfs) {
		return curve.InterpolateCatmullRomArcLength(
			kfs[i-1].Point(), prev.Point(), next.Point(), kfs[i+2].Point(),
			progress, prev.Easing, curve.DefaultTension)
	}
	return curve.Interpolate2DArcLength(prev.Point(), next.Point(), progress, prev.Easing, mode)
}

// SizeAt returns the cursor size at t. Keyframes without a size use def.
func SizeAt(kfs []recording.CursorKeyframe, t, def float64) float64 {
	size := func(k recording.CursorKeyframe) float64 {
		if k.Size > 0 {
			return k.Size
		}
		return def
	}

	if len(kfs) == 0 {
		return def
	}
	i := bracket(kfs, t)
	if i < 0 {
		return size(kfs[0])
	}
	if i >= len(kfs)-1 {
		return size(kfs[len(kfs)-1])
	}
	prev, next := kfs[i], kfs[i+1]
	span := next.Timestamp - prev.Timestamp
	if span <= 0 {
		return size(next)
	}
	return curve.InterpolateScalar(size(prev), size(next), (t-prev.Timestamp)/span, prev.Easing)
}
