package renderer

import (
	"errors"
	"fmt"
	"log"
	"math"

	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/director"
	"github.com/ivlev/cursorcast/internal/recording"
)

// Input is everything needed to synthesize the frame states of one export.
type Input struct {
	Keyframes []recording.CursorKeyframe
	Clicks    []recording.ClickEvent
	Sections  []recording.ZoomSection

	FPS      int
	Duration float64 // ms
	Frames   int     // caps the frame count derived from Duration when > 0
	Width    int     // source video size
	Height   int

	Cursor config.CursorConfig
	Zoom   config.ZoomConfig
	Click  config.ClickConfig
}

// Synthesizer derives one FrameState per output frame. After construction
// it only reads shared data, so StateAt may be called from many goroutines.
type Synthesizer struct {
	in       Input
	interval float64 // ms
	frames   int
	mode     curve.PathMode
	shape    cursor.Shape
	shapes   []ShapeSample
	visible  *visibility
	regions  []director.ZoomRegion
}

// NewSynthesizer validates the input and runs the sequential zoom pass.
func NewSynthesizer(in Input) (*Synthesizer, error) {
	if in.FPS <= 0 {
		return nil, fmt.Errorf("invalid fps: %d", in.FPS)
	}
	if !(in.Duration > 0) || math.IsInf(in.Duration, 0) {
		return nil, fmt.Errorf("invalid duration: %.2fms", in.Duration)
	}
	if err := recording.ValidateKeyframes(in.Keyframes); err != nil {
		return nil, err
	}

	fallback, ok := cursor.ParseShape(in.Cursor.Shape)
	if !ok {
		log.Printf("[!] Unknown cursor shape %q, using %s", in.Cursor.Shape, fallback)
	}

	s := &Synthesizer{
		in:       in,
		interval: 1000 / float64(in.FPS),
		frames:   int(math.Ceil(in.Duration * float64(in.FPS) / 1000)),
		mode:     ParsePathMode(in.Cursor.Path),
		shape:    fallback,
	}

	if in.Frames > 0 && in.Frames < s.frames {
		s.frames = in.Frames
	}

	stabilizer := ShapeStabilizer{Lookahead: in.Cursor.ShapeLookahead}
	s.shapes = stabilizer.Stabilize(ShapeSamples(in.Keyframes, fallback))
	s.visible = newVisibility(in.Keyframes, in.Clicks, in.Cursor.HideWhenStatic, in.Cursor.HideDelay, in.Cursor.StaticThreshold)

	s.regions = director.ResolveZoomRegions(in.Sections, director.ResolveOptions{
		FPS:        in.FPS,
		Duration:   in.Duration,
		Width:      in.Width,
		Height:     in.Height,
		SmoothTime: in.Zoom.SmoothTime,
		Enabled:    in.Zoom.Enabled,
	})
	return s, nil
}

// FrameCount returns ceil(duration / frame interval), capped by Input.Frames.
func (s *Synthesizer) FrameCount() int {
	return s.frames
}

// TimestampAt returns the timestamp of frame i in ms, capped at the duration.
func (s *Synthesizer) TimestampAt(i int) float64 {
	return math.Min(float64(i)*1000/float64(s.in.FPS), s.in.Duration)
}

// Regions exposes the resolved zoom pass.
func (s *Synthesizer) Regions() []director.ZoomRegion {
	return s.regions
}

func (s *Synthesizer) cursorAt(t float64) curve.Point {
	return InterpolateCursor(s.in.Keyframes, t, s.mode, s.in.Width, s.in.Height)
}

func (s *Synthesizer) regionAt(i int) director.ZoomRegion {
	r, err := director.RegionAt(s.regions, i)
	if errors.Is(err, director.ErrZoomRegionUnavailable) {
		if s.in.Zoom.Enabled {
			log.Printf("[!] Frame %d: %v, using full frame", i, err)
		}
		return director.NeutralRegion(s.TimestampAt(i), s.in.Width, s.in.Height)
	}
	return r
}

// StateAt resolves frame i. Each frame is computed from the shared input
// alone, so the result does not depend on which frames were asked for
// before.
func (s *Synthesizer) StateAt(i int) FrameState {
	t := s.TimestampAt(i)
	pos := s.cursorAt(t)
	dt := s.interval / 1000

	state := FrameState{
		Index:         i,
		Timestamp:     t,
		CursorX:       pos.X,
		CursorY:       pos.Y,
		CursorVisible: s.visible.Visible(t),
		CursorShape:   ShapeAt(s.shapes, t, s.shape),
		CursorSize:    SizeAt(s.in.Keyframes, t, s.in.Cursor.Size),
		ClickScale:    ClickAnimationScale(s.in.Clicks, t, s.in.Click.Duration, s.in.Click.ScaleFloor),
	}

	region := s.regionAt(i)
	state.Zoom = ZoomState{
		CenterX: region.CenterX,
		CenterY: region.CenterY,
		Level:   region.Scale,
	}

	if i > 0 {
		prev := s.cursorAt(s.TimestampAt(i - 1))
		state.CursorVelocityX = (pos.X - prev.X) / dt
		state.CursorVelocityY = (pos.Y - prev.Y) / dt
	}
	return state
}

// Synthesize resolves every frame in order.
func (s *Synthesizer) Synthesize() []FrameState {
	states := make([]FrameState, s.frames)
	for i := range states {
		states[i] = s.StateAt(i)
	}
	return states
}
