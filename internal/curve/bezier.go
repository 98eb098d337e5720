package curve

import (
	"math"
	"sort"
)

// Point is a position in source-video pixel space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// EvalCubicBezier evaluates the cubic Bezier p0..p3 at parameter t.
func EvalCubicBezier(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// CubicBezierDerivative returns dB/dt at t.
func CubicBezierDerivative(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := 3 * mt * mt
	b := 6 * mt * t
	c := 3 * t * t
	return Point{
		X: a*(p1.X-p0.X) + b*(p2.X-p1.X) + c*(p3.X-p2.X),
		Y: a*(p1.Y-p0.Y) + b*(p2.Y-p1.Y) + c*(p3.Y-p2.Y),
	}
}

// DefaultArcSamples is the sample count used when a caller passes zero.
const DefaultArcSamples = 100

// ArcSample pairs a curve parameter with the distance travelled up to it.
type ArcSample struct {
	T      float64
	Length float64
}

// ArcLengthTable is a monotonic (t, cumulative length) lookup for one segment.
type ArcLengthTable struct {
	Samples []ArcSample
}

// Total returns the approximate length of the whole segment.
func (a ArcLengthTable) Total() float64 {
	if len(a.Samples) == 0 {
		return 0
	}
	return a.Samples[len(a.Samples)-1].Length
}

// BuildArcLengthTable samples the curve at samples+1 uniform parameters and
// accumulates chord lengths between them.
func BuildArcLengthTable(p0, p1, p2, p3 Point, samples int) ArcLengthTable {
	if samples <= 0 {
		samples = DefaultArcSamples
	}
	table := make([]ArcSample, samples+1)
	prev := p0
	total := 0.0
	table[0] = ArcSample{T: 0, Length: 0}
	for i := 1; i <= samples; i++ {
		t := float64(i) / float64(samples)
		p := EvalCubicBezier(p0, p1, p2, p3, t)
		total += prev.Dist(p)
		table[i] = ArcSample{T: t, Length: total}
		prev = p
	}
	return ArcLengthTable{Samples: table}
}

const segmentTolerance = 1e-4

// ParameterAtArcLength inverts the table: it returns the curve parameter at
// which the given distance along the curve is reached.
func ParameterAtArcLength(table ArcLengthTable, target float64) float64 {
	n := len(table.Samples)
	if n == 0 || target <= 0 {
		return 0
	}
	if target >= table.Total() {
		return 1
	}

	i := sort.Search(n, func(i int) bool { return table.Samples[i].Length >= target })
	if i == 0 {
		return table.Samples[0].T
	}
	lo, hi := table.Samples[i-1], table.Samples[i]
	seg := hi.Length - lo.Length
	if seg < segmentTolerance {
		return lo.T
	}
	return lo.T + (hi.T-lo.T)*(target-lo.Length)/seg
}

// EvalAtArcFraction evaluates the Bezier at the point that lies the given
// fraction of its total length from p0.
func EvalAtArcFraction(p0, p1, p2, p3 Point, fraction float64) Point {
	if fraction <= 0 {
		return p0
	}
	if fraction >= 1 {
		return p3
	}
	table := BuildArcLengthTable(p0, p1, p2, p3, DefaultArcSamples)
	t := ParameterAtArcLength(table, fraction*table.Total())
	return EvalCubicBezier(p0, p1, p2, p3, t)
}
