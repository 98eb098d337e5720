package renderer

import (
	"testing"

	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/recording"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kf(t, x, y float64) recording.CursorKeyframe {
	return recording.CursorKeyframe{Timestamp: t, X: x, Y: y, Easing: curve.Linear}
}

func baseInput(kfs ...recording.CursorKeyframe) Input {
	zoom := config.DefaultZoom()
	zoom.Enabled = false
	return Input{
		Keyframes: kfs,
		FPS:       30,
		Duration:  1000,
		Width:     1920,
		Height:    1080,
		Cursor:    config.DefaultCursor(),
		Zoom:      zoom,
		Click:     config.DefaultClick(),
	}
}

func TestSynthesizerStraightLine(t *testing.T) {
	s, err := NewSynthesizer(baseInput(kf(0, 0, 0), kf(1000, 100, 0)))
	require.NoError(t, err)
	require.Equal(t, 30, s.FrameCount())

	assert.Equal(t, 100.0, s.TimestampAt(3))
	assert.Equal(t, 900.0, s.TimestampAt(27))

	state := s.StateAt(15)
	assert.Equal(t, 500.0, state.Timestamp)
	assert.InDelta(t, 50, state.CursorX, 1e-9)
	assert.Equal(t, 0.0, state.CursorY)
	assert.InDelta(t, 100, state.CursorVelocityX, 1e-6)
	assert.InDelta(t, 0, state.CursorVelocityY, 1e-9)
	assert.True(t, state.CursorVisible)
	assert.Equal(t, cursor.Arrow, state.CursorShape)
	assert.Equal(t, 1.0, state.ClickScale)
	assert.Equal(t, 1.0, state.Zoom.Level)
	assert.Equal(t, 960.0, state.Zoom.CenterX)

	first := s.StateAt(0)
	assert.Equal(t, 0.0, first.CursorVelocityX)
}

func TestSynthesizeMatchesStateAt(t *testing.T) {
	in := baseInput(kf(0, 10, 10), kf(300, 400, 90), kf(650, 200, 500), kf(1000, 900, 300))
	in.Zoom.Enabled = true
	in.Sections = []recording.ZoomSection{{StartTime: 200, EndTime: 800, Scale: 2, CenterX: 400, CenterY: 300}}
	in.Clicks = []recording.ClickEvent{{Timestamp: 320, Action: recording.ClickDown}}

	s, err := NewSynthesizer(in)
	require.NoError(t, err)

	states := s.Synthesize()
	require.Len(t, states, s.FrameCount())
	// any order of evaluation gives the same frames
	for i := len(states) - 1; i >= 0; i-- {
		assert.Equal(t, states[i], s.StateAt(i))
	}
	assert.Greater(t, states[20].Zoom.Level, 1.0)
}

func TestSynthesizerRejectsBadKeyframes(t *testing.T) {
	_, err := NewSynthesizer(baseInput(kf(500, 0, 0), kf(100, 10, 10)))
	assert.ErrorIs(t, err, recording.ErrInvalidKeyframeData)

	in := baseInput()
	in.FPS = 0
	_, err = NewSynthesizer(in)
	assert.Error(t, err)
}

func TestSynthesizerOutOfRangeZoomFallsBack(t *testing.T) {
	s, err := NewSynthesizer(baseInput(kf(0, 0, 0)))
	require.NoError(t, err)

	state := s.StateAt(s.FrameCount() + 5)
	assert.Equal(t, 1000.0, state.Timestamp)
	assert.Equal(t, 1.0, state.Zoom.Level)
	assert.Equal(t, 540.0, state.Zoom.CenterY)
}

func TestInterpolateCursorCases(t *testing.T) {
	assert.Equal(t, curve.Point{X: 960, Y: 540}, InterpolateCursor(nil, 100, curve.PathLinear, 1920, 1080))

	one := []recording.CursorKeyframe{kf(200, 5, 7)}
	for _, at := range []float64{0, 200, 5000} {
		assert.Equal(t, curve.Point{X: 5, Y: 7}, InterpolateCursor(one, at, curve.PathLinear, 1920, 1080))
	}

	kfs := []recording.CursorKeyframe{kf(100, 0, 0), kf(200, 100, 0), kf(300, 100, 100), kf(400, 0, 100)}
	assert.Equal(t, kfs[0].Point(), InterpolateCursor(kfs, 0, curve.PathLinear, 0, 0), "clamps before the first keyframe")
	assert.Equal(t, kfs[3].Point(), InterpolateCursor(kfs, 900, curve.PathLinear, 0, 0), "clamps after the last keyframe")
	for _, k := range kfs {
		assert.Equal(t, k.Point(), InterpolateCursor(kfs, k.Timestamp, curve.PathBezier, 0, 0))
	}

	// middle span has neighbours on both sides and bulges outward like a spline
	mid := InterpolateCursor(kfs, 250, curve.PathLinear, 0, 0)
	assert.Greater(t, mid.X, 100.0)
	assert.InDelta(t, 50, mid.Y, 1)
}

func TestInterpolateCursorEasing(t *testing.T) {
	kfs := []recording.CursorKeyframe{kf(0, 0, 0), kf(1000, 100, 0)}
	kfs[0].Easing = curve.EaseIn
	p := InterpolateCursor(kfs, 500, curve.PathLinear, 0, 0)
	assert.InDelta(t, 12.5, p.X, 1e-9)
}

func TestSizeAt(t *testing.T) {
	kfs := []recording.CursorKeyframe{kf(0, 0, 0), kf(1000, 0, 0)}
	kfs[1].Size = 64
	assert.Equal(t, 32.0, SizeAt(kfs, 0, 32))
	assert.InDelta(t, 48, SizeAt(kfs, 500, 32), 1e-9)
	assert.Equal(t, 64.0, SizeAt(kfs, 2000, 32))
	assert.Equal(t, 20.0, SizeAt(nil, 10, 20))
}

func TestShapeStabilizer(t *testing.T) {
	st := ShapeStabilizer{Lookahead: 100}

	flicker := []ShapeSample{
		{0, cursor.Arrow},
		{50, cursor.Pointer},
		{80, cursor.Arrow},
		{300, cursor.Arrow},
	}
	for _, s := range st.Stabilize(flicker) {
		assert.Equal(t, cursor.Arrow, s.Shape, "t=%.0f", s.Timestamp)
	}

	sustained := []ShapeSample{
		{0, cursor.Arrow},
		{50, cursor.Pointer},
		{300, cursor.Pointer},
		{420, cursor.Arrow},
	}
	got := st.Stabilize(sustained)
	assert.Equal(t, []cursor.Shape{cursor.Arrow, cursor.Pointer, cursor.Pointer, cursor.Arrow},
		[]cursor.Shape{got[0].Shape, got[1].Shape, got[2].Shape, got[3].Shape})

	assert.Equal(t, cursor.Pointer, ShapeAt(got, 100, cursor.Arrow))
	assert.Equal(t, cursor.Arrow, ShapeAt(got, -5, cursor.Hand))
	assert.Equal(t, cursor.Hand, ShapeAt(nil, 10, cursor.Hand))
	assert.Nil(t, st.Stabilize(nil))
}

func TestClickAnimationScale(t *testing.T) {
	clicks := []recording.ClickEvent{
		{Timestamp: 1000, Action: recording.ClickDown, Button: "left"},
		{Timestamp: 1050, Action: recording.ClickUp, Button: "left"},
	}

	assert.Equal(t, 1.0, ClickAnimationScale(clicks, 1000, 200, 0.8))
	assert.InDelta(t, 0.8, ClickAnimationScale(clicks, 1100, 200, 0.8), 1e-12)
	assert.InDelta(t, 1.0, ClickAnimationScale(clicks, 1200, 200, 0.8), 1e-12)
	assert.Equal(t, 1.0, ClickAnimationScale(clicks, 999, 200, 0.8))
	assert.Equal(t, 1.0, ClickAnimationScale(clicks, 1201, 200, 0.8))

	prev := 1.0
	for ms := 1000.0; ms <= 1100; ms += 10 {
		v := ClickAnimationScale(clicks, ms, 200, 0.8)
		assert.LessOrEqual(t, v, prev)
		assert.GreaterOrEqual(t, v, 0.8)
		prev = v
	}
}

func TestHideWhenStatic(t *testing.T) {
	in := baseInput(kf(0, 0, 0), kf(500, 100, 0), kf(3000, 101, 0))
	in.FPS = 10
	in.Duration = 3000
	in.Cursor.HideWhenStatic = true
	in.Clicks = []recording.ClickEvent{{Timestamp: 1700, Action: recording.ClickDown}}

	s, err := NewSynthesizer(in)
	require.NoError(t, err)

	assert.True(t, s.StateAt(5).CursorVisible)
	assert.True(t, s.StateAt(14).CursorVisible)
	assert.False(t, s.StateAt(16).CursorVisible)
	assert.True(t, s.StateAt(21).CursorVisible, "click counts as activity")
	assert.False(t, s.StateAt(29).CursorVisible)

	in.Cursor.HideWhenStatic = false
	s, err = NewSynthesizer(in)
	require.NoError(t, err)
	assert.True(t, s.StateAt(29).CursorVisible)
}

func TestHideWhenStaticSlowDrag(t *testing.T) {
	// 60 Hz keyframes 1.5 px apart: every step is under the 2 px threshold
	var drag []recording.CursorKeyframe
	for i := 0; i <= 120; i++ {
		drag = append(drag, kf(float64(i)*1000/60, 1.5*float64(i), 0))
	}
	v := newVisibility(drag, nil, true, 1000, 2)
	assert.True(t, v.Visible(1000))
	assert.True(t, v.Visible(2000), "cursor is still moving at x=180")
	assert.False(t, v.Visible(3200))

	// jitter around one spot never adds up to movement
	var jitter []recording.CursorKeyframe
	for i := 0; i <= 180; i++ {
		jitter = append(jitter, kf(float64(i)*1000/60, 100+float64(i%2), 100))
	}
	v = newVisibility(jitter, nil, true, 1000, 2)
	assert.False(t, v.Visible(2500))
}

func TestKeyframesFromEvents(t *testing.T) {
	events := []recording.MouseEvent{
		{Timestamp: 0, X: 100, Y: 100, Shape: "arrow"},
		{Timestamp: 100, X: 101, Y: 100},
		{Timestamp: 600, X: 100, Y: 101},
		{Timestamp: 700, X: 300, Y: 100},
		{Timestamp: 800, X: 300, Y: 100, Shape: "pointer"},
		{Timestamp: 900, X: 301, Y: 100},
	}

	kfs := KeyframesFromEvents(events, 2)
	require.NoError(t, recording.ValidateKeyframes(kfs))

	times := make([]float64, len(kfs))
	for i, k := range kfs {
		times[i] = k.Timestamp
	}
	assert.Equal(t, []float64{0, 600, 700, 800, 900}, times)
	assert.Equal(t, 100.0, kfs[1].X, "rest keyframe holds the last kept position")
	assert.Equal(t, cursor.Pointer, kfs[3].Shape)
	assert.Equal(t, 300.0, kfs[4].X)
	assert.Nil(t, KeyframesFromEvents(nil, 2))
}
