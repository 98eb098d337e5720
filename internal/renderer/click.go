package renderer

import (
	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/recording"
)

// ClickAnimationScale returns the cursor scale at t for the most recent
// mouse-down within duration ms. The first half of the window eases out
// from 1 down to floor, the second half eases back in to 1.
func ClickAnimationScale(clicks []recording.ClickEvent, t, duration, floor float64) float64 {
	if duration <= 0 {
		return 1
	}

	latest, found := 0.0, false
	for _, c := range clicks {
		if c.Action != recording.ClickDown || c.Timestamp > t || t-c.Timestamp > duration {
			continue
		}
		if !found || c.Timestamp > latest {
			latest, found = c.Timestamp, true
		}
	}
	if !found {
		return 1
	}

	elapsed := t - latest
	half := duration / 2
	depth := 1 - floor
	if elapsed < half {
		return 1 - depth*curve.Ease(elapsed/half, curve.EaseOut)
	}
	return floor + depth*curve.Ease((elapsed-half)/half, curve.EaseIn)
}
