package curve

import "math"

// PathMode selects the shape of a two-point path.
type PathMode int

const (
	// PathLinear moves along the straight segment between the endpoints.
	PathLinear PathMode = iota
	// PathBezier moves along a gently bowed cubic between the endpoints.
	PathBezier
)

// DefaultTension is the Catmull-Rom tension used when callers pass zero.
const DefaultTension = 0.5

// bowFactor scales how far the symmetric bezier control points leave the
// straight line, relative to segment length and tension.
const bowFactor = 0.2

// Interpolate2DArcLength returns the point reached after the eased fraction
// of the path length between start and end. Endpoints are returned exactly.
func Interpolate2DArcLength(start, end Point, progress float64, easing Easing, mode PathMode) Point {
	if progress <= 0 {
		return start
	}
	if progress >= 1 {
		return end
	}
	eased := Ease(progress, easing)

	if mode != PathBezier {
		// a straight line's length grows linearly with its parameter
		return start.Lerp(end, eased)
	}

	d := end.Sub(start)
	length := math.Hypot(d.X, d.Y)
	if length < segmentTolerance {
		return start
	}
	perp := Point{X: -d.Y / length, Y: d.X / length}.Mul(length * DefaultTension * bowFactor)
	cp1 := start.Add(d.Mul(1.0 / 3.0)).Add(perp)
	cp2 := start.Add(d.Mul(2.0 / 3.0)).Add(perp)
	return EvalAtArcFraction(start, cp1, cp2, end, eased)
}

// CatmullRomToBezier converts the p1->p2 span of a Catmull-Rom spline into
// the equivalent cubic Bezier control polygon.
func CatmullRomToBezier(p0, p1, p2, p3 Point, tension float64) (Point, Point, Point, Point) {
	if tension <= 0 {
		tension = DefaultTension
	}
	k := tension / 3
	b1 := p1.Add(p2.Sub(p0).Mul(k))
	b2 := p2.Sub(p3.Sub(p1).Mul(k))
	return p1, b1, b2, p2
}

// InterpolateCatmullRomArcLength evaluates the p1->p2 span of the spline
// through p0..p3 at the eased arc-length fraction t.
func InterpolateCatmullRomArcLength(p0, p1, p2, p3 Point, t float64, easing Easing, tension float64) Point {
	if t <= 0 {
		return p1
	}
	if t >= 1 {
		return p2
	}
	b0, b1, b2, b3 := CatmullRomToBezier(p0, p1, p2, p3, tension)
	return EvalAtArcFraction(b0, b1, b2, b3, Ease(t, easing))
}

// InterpolateScalar eases a single value. In one dimension arc length and
// value distance coincide, so this is the scalar form of the 2D helpers.
func InterpolateScalar(a, b, progress float64, easing Easing) float64 {
	if progress <= 0 {
		return a
	}
	if progress >= 1 {
		return b
	}
	return a + (b-a)*Ease(progress, easing)
}
