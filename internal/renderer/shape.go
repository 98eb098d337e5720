package renderer

import (
	"sort"

	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/recording"
)

// ShapeSample is the raw cursor shape reported at a point in time.
type ShapeSample struct {
	Timestamp float64
	Shape     cursor.Shape
}

// ShapeStabilizer suppresses single-sample shape flicker: a change is only
// applied if the previous shape does not come back within Lookahead ms.
type ShapeStabilizer struct {
	Lookahead float64
}

// Stabilize returns samples with the same timestamps and filtered shapes.
func (s ShapeStabilizer) Stabilize(samples []ShapeSample) []ShapeSample {
	if len(samples) == 0 {
		return nil
	}

	out := make([]ShapeSample, len(samples))
	current := samples[0].Shape
	for i, sample := range samples {
		if sample.Shape != current && !s.revertsAfter(samples, i, current) {
			current = sample.Shape
		}
		out[i] = ShapeSample{Timestamp: sample.Timestamp, Shape: current}
	}
	return out
}

func (s ShapeStabilizer) revertsAfter(samples []ShapeSample, i int, previous cursor.Shape) bool {
	limit := samples[i].Timestamp + s.Lookahead
	for j := i + 1; j < len(samples) && samples[j].Timestamp <= limit; j++ {
		if samples[j].Shape == previous {
			return true
		}
	}
	return false
}

// ShapeSamples extracts the shape track from keyframes. Keyframes without a
// shape keep the previous one.
func ShapeSamples(kfs []recording.CursorKeyframe, fallback cursor.Shape) []ShapeSample {
	samples := make([]ShapeSample, 0, len(kfs))
	current := fallback
	for _, k := range kfs {
		if k.Shape != "" {
			current = k.Shape
		}
		samples = append(samples, ShapeSample{Timestamp: k.Timestamp, Shape: current})
	}
	return samples
}

// ShapeAt returns the shape of the last sample at or before t.
func ShapeAt(samples []ShapeSample, t float64, fallback cursor.Shape) cursor.Shape {
	i := sort.Search(len(samples), func(i int) bool {
		return samples[i].Timestamp > t
	}) - 1
	if i < 0 {
		if len(samples) > 0 {
			return samples[0].Shape
		}
		return fallback
	}
	return samples[i].Shape
}
