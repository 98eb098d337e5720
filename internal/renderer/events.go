package renderer

import (
	"math"

	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/recording"
)

// KeyframesFromEvents turns raw pointer samples into linear keyframes.
// Samples within minDistance px of the last kept keyframe are dropped, so
// jitter at rest does not turn into motion. The sample just before a move
// is kept to preserve the rest period, and shape changes always produce a
// keyframe.
func KeyframesFromEvents(events []recording.MouseEvent, minDistance float64) []recording.CursorKeyframe {
	if len(events) == 0 {
		return nil
	}

	toKeyframe := func(e recording.MouseEvent) recording.CursorKeyframe {
		k := recording.CursorKeyframe{Timestamp: e.Timestamp, X: e.X, Y: e.Y, Easing: curve.Linear}
		if e.Shape != "" {
			k.Shape, _ = cursor.ParseShape(e.Shape)
		}
		return k
	}

	kfs := []recording.CursorKeyframe{toKeyframe(events[0])}
	skipped := -1
	for i := 1; i < len(events); i++ {
		e := events[i]
		last := kfs[len(kfs)-1]
		k := toKeyframe(e)

		moved := math.Hypot(e.X-last.X, e.Y-last.Y) > minDistance
		reshaped := k.Shape != "" && k.Shape != last.Shape
		if !moved && !reshaped {
			skipped = i
			continue
		}
		if skipped == i-1 {
			hold := toKeyframe(events[skipped])
			hold.X, hold.Y = last.X, last.Y
			hold.Shape = last.Shape
			kfs = append(kfs, hold)
		}
		kfs = append(kfs, k)
	}

	if skipped == len(events)-1 {
		hold := kfs[len(kfs)-1]
		hold.Timestamp = events[skipped].Timestamp
		kfs = append(kfs, hold)
	}
	return kfs
}
