package renderer

import (
	"math"
	"sort"

	"github.com/ivlev/cursorcast/internal/recording"
)

// span is a time range during which the cursor was moving.
type span struct {
	start, end float64
}

// visibility implements hide-when-static: the cursor disappears once more
// than delay ms have passed since it last moved farther than threshold px.
// Clicks count as activity.
type visibility struct {
	enabled bool
	delay   float64
	moving  []span
	clicks  []float64
}

func newVisibility(kfs []recording.CursorKeyframe, clicks []recording.ClickEvent, enabled bool, delay, threshold float64) *visibility {
	v := &visibility{enabled: enabled, delay: delay}
	if !enabled {
		return v
	}

	// the cursor counts as having appeared at t=0
	v.moving = append(v.moving, span{0, 0})
	if len(kfs) == 0 {
		return v
	}
	// distance is measured from where the last counted movement ended, so
	// a slow drag made of tiny steps still adds up
	anchor := kfs[0]
	for i := 1; i < len(kfs); i++ {
		a, b := kfs[i-1], kfs[i]
		if math.Hypot(b.X-anchor.X, b.Y-anchor.Y) <= threshold {
			continue
		}
		anchor = b
		if last := &v.moving[len(v.moving)-1]; a.Timestamp <= last.end {
			last.end = math.Max(last.end, b.Timestamp)
			continue
		}
		v.moving = append(v.moving, span{a.Timestamp, b.Timestamp})
	}

	for _, c := range clicks {
		v.clicks = append(v.clicks, c.Timestamp)
	}
	sort.Float64s(v.clicks)
	return v
}

// lastActivity returns the latest time at or before t when the cursor moved
// or clicked.
func (v *visibility) lastActivity(t float64) float64 {
	last := math.Inf(-1)

	i := sort.Search(len(v.moving), func(i int) bool {
		return v.moving[i].start > t
	}) - 1
	if i >= 0 {
		last = math.Min(v.moving[i].end, t)
	}

	j := sort.SearchFloat64s(v.clicks, math.Nextafter(t, math.Inf(1))) - 1
	if j >= 0 {
		last = math.Max(last, v.clicks[j])
	}
	return last
}

func (v *visibility) Visible(t float64) bool {
	if !v.enabled {
		return true
	}
	return t-v.lastActivity(t) <= v.delay
}
