package analyzer

import (
	"math"

	"github.com/ivlev/cursorcast/internal/recording"
)

// DwellAnalyzer splits a pointer timeline into alternating static and
// moving sections. Static sections zoom onto the point where the pointer
// settled; moving sections show the whole frame.
type DwellAnalyzer struct {
	DeadZone          float64 // px
	MinStaticDuration float64 // ms
	ZoomLevel         float64
	FrameWidth        int
	FrameHeight       int
	Duration          float64 // ms, extends the last section when set
}

// NewDwellAnalyzer creates an analyzer with the default thresholds.
func NewDwellAnalyzer(width, height int, zoomLevel float64) *DwellAnalyzer {
	return &DwellAnalyzer{
		DeadZone:          15,
		MinStaticDuration: 300,
		ZoomLevel:         zoomLevel,
		FrameWidth:        width,
		FrameHeight:       height,
	}
}

type mode int

const (
	moving mode = iota
	static
)

// Analyze walks events in order and returns ordered, non-overlapping zoom
// sections covering [first event, last event] (or Duration, if later).
func (a *DwellAnalyzer) Analyze(events []recording.MouseEvent) []recording.ZoomSection {
	if len(events) == 0 {
		return nil
	}

	end := events[len(events)-1].Timestamp
	if a.Duration > end {
		end = a.Duration
	}

	var (
		sections []recording.ZoomSection
		cur      mode
		start    = events[0].Timestamp
		cx, cy   float64
	)

	closeSection := func(at float64) {
		sections = append(sections, a.section(cur, start, at, cx, cy))
		start = at
	}

	if a.dwellsAt(events, 0, end) {
		cur = static
		cx, cy = events[0].X, events[0].Y
	}

	for i := 1; i < len(events); i++ {
		e := events[i]
		switch cur {
		case static:
			if math.Hypot(e.X-cx, e.Y-cy) <= a.DeadZone {
				continue
			}
			closeSection(e.Timestamp)
			cur = moving
			// a jump straight into a new dwell skips the empty moving section
			if a.dwellsAt(events, i, end) {
				cur = static
				cx, cy = e.X, e.Y
			}
		case moving:
			if !a.dwellsAt(events, i, end) {
				continue
			}
			if e.Timestamp > start {
				closeSection(e.Timestamp)
			}
			cur = static
			cx, cy = e.X, e.Y
		}
	}

	closeSection(end)
	return sections
}

// dwellsAt reports whether the pointer stays within the dead zone of
// events[i] for at least MinStaticDuration. The scan is bounded by time,
// not by event count, so the answer does not depend on the sampling rate:
// it stops at the first event leaving the zone, whose timestamp ends the
// dwell, or once the window is covered. Data running out inside the zone
// counts as dwelling until end.
func (a *DwellAnalyzer) dwellsAt(events []recording.MouseEvent, i int, end float64) bool {
	origin := events[i]
	for j := i + 1; j < len(events); j++ {
		e := events[j]
		if math.Hypot(e.X-origin.X, e.Y-origin.Y) > a.DeadZone {
			return e.Timestamp-origin.Timestamp >= a.MinStaticDuration
		}
		if e.Timestamp-origin.Timestamp >= a.MinStaticDuration {
			return true
		}
	}
	return end-origin.Timestamp >= a.MinStaticDuration
}

func (a *DwellAnalyzer) section(m mode, start, end, cx, cy float64) recording.ZoomSection {
	if m == static && a.ZoomLevel > 1 {
		return recording.ZoomSection{
			StartTime: start,
			EndTime:   end,
			Scale:     a.ZoomLevel,
			CenterX:   cx,
			CenterY:   cy,
		}
	}
	s := recording.NeutralSection(a.FrameWidth, a.FrameHeight)
	s.StartTime, s.EndTime = start, end
	return s
}
