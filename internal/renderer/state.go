package renderer

import "github.com/ivlev/cursorcast/internal/cursor"

// FrameState is the fully resolved motion state of one output frame.
// Coordinates are in source-video pixels. Values are never mutated after
// synthesis; use the With* helpers to derive a modified copy.
type FrameState struct {
	Index     int
	Timestamp float64 // ms

	CursorX         float64
	CursorY         float64
	CursorVisible   bool
	CursorVelocityX float64 // px/s
	CursorVelocityY float64
	CursorShape     cursor.Shape
	CursorSize      float64
	ClickScale      float64 // (floor, 1]

	Zoom ZoomState
}

// ZoomState is the camera for the frame. Level 1 is the full frame.
type ZoomState struct {
	CenterX float64
	CenterY float64
	Level   float64
}

func (z ZoomState) Active() bool {
	return z.Level > 1
}

// WithCursor returns a copy of s with the cursor moved to (x, y).
func (s FrameState) WithCursor(x, y float64) FrameState {
	s.CursorX, s.CursorY = x, y
	return s
}
