package recording

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidKeyframeData marks non-monotonic or non-finite keyframes.
	ErrInvalidKeyframeData = errors.New("invalid keyframe data")
	ErrInvalidVideoInfo    = errors.New("invalid video info")
)

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ValidateKeyframes fails on the first keyframe that is not finite or that
// goes back in time. Bad data is rejected rather than clamped.
func ValidateKeyframes(kfs []CursorKeyframe) error {
	for i, k := range kfs {
		if !finite(k.Timestamp, k.X, k.Y, k.Size) {
			return fmt.Errorf("%w: keyframe %d has non-finite values", ErrInvalidKeyframeData, i)
		}
		if k.Size < 0 {
			return fmt.Errorf("%w: keyframe %d has negative size %.2f", ErrInvalidKeyframeData, i, k.Size)
		}
		if i > 0 && k.Timestamp < kfs[i-1].Timestamp {
			return fmt.Errorf("%w: keyframe %d at %.3fms precedes keyframe %d at %.3fms",
				ErrInvalidKeyframeData, i, k.Timestamp, i-1, kfs[i-1].Timestamp)
		}
	}
	return nil
}

// ValidateEvents applies the same rules to raw mouse samples.
func ValidateEvents(events []MouseEvent) error {
	for i, e := range events {
		if !finite(e.Timestamp, e.X, e.Y) {
			return fmt.Errorf("%w: mouse event %d has non-finite values", ErrInvalidKeyframeData, i)
		}
		if i > 0 && e.Timestamp < events[i-1].Timestamp {
			return fmt.Errorf("%w: mouse event %d goes back in time", ErrInvalidKeyframeData, i)
		}
	}
	return nil
}

// Validate checks the whole document.
func (m *Metadata) Validate() error {
	v := m.Video
	if v.FPS <= 0 || v.Width <= 0 || v.Height <= 0 || !(v.Duration > 0) || !finite(v.Duration) {
		return fmt.Errorf("%w: %dx%d @ %d fps, %.1fms", ErrInvalidVideoInfo, v.Width, v.Height, v.FPS, v.Duration)
	}
	if err := ValidateKeyframes(m.Keyframes); err != nil {
		return err
	}
	if err := ValidateEvents(m.Mouse); err != nil {
		return err
	}
	for i, c := range m.Clicks {
		if !finite(c.Timestamp) {
			return fmt.Errorf("%w: click %d has non-finite timestamp", ErrInvalidKeyframeData, i)
		}
	}
	for i, s := range m.Sections {
		if !finite(s.StartTime, s.EndTime, s.Scale, s.CenterX, s.CenterY) || s.EndTime < s.StartTime {
			return fmt.Errorf("%w: zoom section %d is malformed", ErrInvalidKeyframeData, i)
		}
		if i > 0 && s.StartTime < m.Sections[i-1].EndTime {
			return fmt.Errorf("%w: zoom section %d overlaps its predecessor", ErrInvalidKeyframeData, i)
		}
	}
	return nil
}
