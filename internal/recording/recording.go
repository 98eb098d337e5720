package recording

import (
	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/curve"
	"github.com/ivlev/cursorcast/internal/cursor"
)

// Metadata is the persisted description of one screen recording.
type Metadata struct {
	Version   string               `yaml:"version" toml:"version" json:"version"`
	Video     VideoInfo            `yaml:"video" toml:"video" json:"video"`
	Keyframes []CursorKeyframe     `yaml:"keyframes" toml:"keyframes" json:"keyframes"`
	Mouse     []MouseEvent         `yaml:"mouse,omitempty" toml:"mouse,omitempty" json:"mouse,omitempty"`
	Clicks    []ClickEvent         `yaml:"clicks,omitempty" toml:"clicks,omitempty" json:"clicks,omitempty"`
	Sections  []ZoomSection        `yaml:"zoom_sections,omitempty" toml:"zoom_sections,omitempty" json:"zoomSections,omitempty"`
	Zoom      *config.ZoomConfig   `yaml:"zoom,omitempty" toml:"zoom,omitempty" json:"zoom,omitempty"`
	Cursor    *config.CursorConfig `yaml:"cursor,omitempty" toml:"cursor,omitempty" json:"cursor,omitempty"`
	Blur      *config.BlurConfig   `yaml:"motion_blur,omitempty" toml:"motion_blur,omitempty" json:"motionBlur,omitempty"`
}

// VideoInfo describes the captured video. Duration is in milliseconds.
type VideoInfo struct {
	Path     string  `yaml:"path" toml:"path" json:"path"`
	Duration float64 `yaml:"duration_ms" toml:"duration_ms" json:"durationMs"`
	FPS      int     `yaml:"fps" toml:"fps" json:"fps"`
	Width    int     `yaml:"width" toml:"width" json:"width"`
	Height   int     `yaml:"height" toml:"height" json:"height"`
}

// CursorKeyframe is an authored cursor sample. Easing applies to the
// segment that starts at this keyframe.
type CursorKeyframe struct {
	Timestamp float64      `yaml:"t" toml:"t" json:"timestamp"`
	X         float64      `yaml:"x" toml:"x" json:"x"`
	Y         float64      `yaml:"y" toml:"y" json:"y"`
	Size      float64      `yaml:"size,omitempty" toml:"size,omitempty" json:"size,omitempty"`
	Shape     cursor.Shape `yaml:"shape,omitempty" toml:"shape,omitempty" json:"shape,omitempty"`
	Easing    curve.Easing `yaml:"easing,omitempty" toml:"easing,omitempty" json:"easing,omitempty"`
}

func (k CursorKeyframe) Point() curve.Point {
	return curve.Point{X: k.X, Y: k.Y}
}

// MouseEvent is a raw pointer sample from the telemetry source.
type MouseEvent struct {
	Timestamp float64 `yaml:"t" toml:"t" json:"timestamp"`
	X         float64 `yaml:"x" toml:"x" json:"x"`
	Y         float64 `yaml:"y" toml:"y" json:"y"`
	Shape     string  `yaml:"shape,omitempty" toml:"shape,omitempty" json:"shape,omitempty"`
}

type ClickAction string

const (
	ClickDown ClickAction = "down"
	ClickUp   ClickAction = "up"
)

type ClickEvent struct {
	Timestamp float64     `yaml:"t" toml:"t" json:"timestamp"`
	Action    ClickAction `yaml:"action" toml:"action" json:"action"`
	Button    string      `yaml:"button,omitempty" toml:"button,omitempty" json:"button,omitempty"`
}

// ZoomSection is a focus decision for a time range [StartTime, EndTime).
type ZoomSection struct {
	StartTime float64 `yaml:"start" toml:"start" json:"startTime"`
	EndTime   float64 `yaml:"end" toml:"end" json:"endTime"`
	Scale     float64 `yaml:"scale" toml:"scale" json:"scale"`
	CenterX   float64 `yaml:"x" toml:"x" json:"centerX"`
	CenterY   float64 `yaml:"y" toml:"y" json:"centerY"`
}

// Contains reports whether t falls inside the section.
func (s ZoomSection) Contains(t float64) bool {
	return t >= s.StartTime && t < s.EndTime
}

// NeutralSection is the implicit full-frame section used when none matches.
func NeutralSection(width, height int) ZoomSection {
	return ZoomSection{
		Scale:   1,
		CenterX: float64(width) / 2,
		CenterY: float64(height) / 2,
	}
}

// Shapes returns the distinct cursor shapes referenced by the keyframes,
// always including fallback.
func (m *Metadata) Shapes(fallback cursor.Shape) []cursor.Shape {
	return KeyframeShapes(m.Keyframes, fallback)
}

// KeyframeShapes lists fallback followed by every other shape used in kfs,
// in order of first use.
func KeyframeShapes(kfs []CursorKeyframe, fallback cursor.Shape) []cursor.Shape {
	seen := map[cursor.Shape]bool{fallback: true}
	out := []cursor.Shape{fallback}
	for _, k := range kfs {
		if k.Shape == "" || seen[k.Shape] {
			continue
		}
		seen[k.Shape] = true
		out = append(out, k.Shape)
	}
	return out
}
