package effects

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/renderer"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
)

type solidGlyphs struct{}

func (solidGlyphs) Rasterize(_ cursor.Shape, size int) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)
	return img, nil
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestContainFitLetterbox(t *testing.T) {
	fit := ContainFit(1920, 1080, 1080, 1920)
	assert.Equal(t, 0.5625, fit.Scale)
	assert.Equal(t, 0.0, fit.OffsetX)
	assert.Equal(t, 656.25, fit.OffsetY)
	assert.Equal(t, image.Rect(0, 656, 1080, 1264), fit.Rect())

	pillar := ContainFit(1000, 1000, 1920, 1080)
	assert.Equal(t, 1.08, pillar.Scale)
	assert.Equal(t, 420.0, pillar.OffsetX)
	assert.Equal(t, 0.0, pillar.OffsetY)

	x, y := fit.Map(960, 540)
	assert.Equal(t, 540.0, x)
	assert.Equal(t, 960.0, y)
}

func TestCropRect(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		scale  float64
		want   image.Rectangle
	}{
		{"no zoom", 100, 100, 1, image.Rect(0, 0, 1920, 1080)},
		{"centered", 960, 540, 2, image.Rect(480, 270, 1440, 810)},
		{"clamped top left", 0, 0, 2, image.Rect(0, 0, 960, 540)},
		{"clamped bottom right", 5000, 5000, 4, image.Rect(1440, 810, 1920, 1080)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CropRect(1920, 1080, tt.cx, tt.cy, tt.scale))
		})
	}
}

func TestBlurLength(t *testing.T) {
	cfg := config.DefaultBlur()
	assert.Equal(t, 0, BlurLength(100, 0, cfg), "below threshold")
	assert.Equal(t, 10, BlurLength(500, 0, cfg))
	assert.Equal(t, cfg.MaxLength, BlurLength(0, 100000, cfg))
	cfg.Enabled = false
	assert.Equal(t, 0, BlurLength(5000, 0, cfg))
}

func TestMotionBlurHorizontal(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	img.Set(4, 4, red)

	cfg := config.DefaultBlur()
	out, origin := MotionBlur(img, 1000, 0, cfg)
	require.NotSame(t, img, out)

	// origin marks where the source pixel grid starts inside the padded output
	cx, cy := origin.X+4, origin.Y+4
	assert.Equal(t, img.Bounds().Dx()+2*origin.X, out.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dy()+2*origin.Y, out.Bounds().Dy())
	assert.NotZero(t, out.RGBAAt(cx-2, cy).A, "smeared left")
	assert.NotZero(t, out.RGBAAt(cx+2, cy).A, "smeared right")
	assert.Zero(t, out.RGBAAt(cx, cy-2).A, "no vertical smear")
	assert.Less(t, out.RGBAAt(cx, cy).A, uint8(255))

	still, origin := MotionBlur(img, 10, 0, cfg)
	assert.Same(t, img, still)
	assert.Equal(t, image.Point{}, origin)
}

func newTestCompositor(w, h int) *Compositor {
	cfg := config.Default()
	cfg.Width, cfg.Height = w, h
	cfg.Blur.Enabled = false
	cfg.ScaleQuality = "nearest"
	return NewCompositor(cfg, cursor.NewCache(solidGlyphs{}))
}

func frameState() renderer.FrameState {
	return renderer.FrameState{
		CursorX:       960,
		CursorY:       540,
		CursorVisible: true,
		CursorShape:   cursor.Arrow,
		CursorSize:    32,
		ClickScale:    1,
		Zoom:          renderer.ZoomState{CenterX: 960, CenterY: 540, Level: 1},
	}
}

func TestComposeLetterboxAndCursor(t *testing.T) {
	c := newTestCompositor(1080, 1920)
	dst := image.NewRGBA(image.Rect(0, 0, 1080, 1920))

	require.NoError(t, c.Compose(solid(1920, 1080, green), frameState(), dst))

	assert.Equal(t, black, dst.RGBAAt(540, 100), "letterbox bar")
	assert.Equal(t, black, dst.RGBAAt(540, 1800), "letterbox bar")
	assert.Equal(t, green, dst.RGBAAt(100, 800))
	// cursor hotspot lands at (540, 960) in canvas space
	assert.Equal(t, red, dst.RGBAAt(545, 965))
	assert.Equal(t, green, dst.RGBAAt(530, 950))

	hidden := frameState()
	hidden.CursorVisible = false
	require.NoError(t, c.Compose(solid(1920, 1080, green), hidden, dst))
	assert.Equal(t, green, dst.RGBAAt(545, 965))
}

func TestComposeZoomCrop(t *testing.T) {
	src := solid(1920, 1080, green)
	draw.Draw(src, image.Rect(0, 0, 960, 540), image.NewUniform(blue), image.Point{}, draw.Src)

	state := frameState()
	state.Zoom = renderer.ZoomState{CenterX: 480, CenterY: 270, Level: 2}
	state.CursorX, state.CursorY = 100, 100
	before := state

	c := newTestCompositor(1920, 1080)
	dst := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	require.NoError(t, c.Compose(src, state, dst))

	assert.Equal(t, before, state)
	assert.Equal(t, blue, dst.RGBAAt(1900, 1060))
	assert.Equal(t, blue, dst.RGBAAt(960, 540))
	// cursor at (100,100) in the crop doubles to (200,200) on the canvas
	assert.Equal(t, red, dst.RGBAAt(210, 210))
	assert.Equal(t, blue, dst.RGBAAt(190, 190))
}

func TestComposeClampsHotspot(t *testing.T) {
	state := frameState()
	state.CursorX, state.CursorY = -500, -500

	c := newTestCompositor(1920, 1080)
	dst := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	require.NoError(t, c.Compose(solid(1920, 1080, green), state, dst))
	assert.Equal(t, red, dst.RGBAAt(5, 5))
}

func TestComposeMissingAsset(t *testing.T) {
	cfg := config.Default()
	c := NewCompositor(cfg, cursor.NewCache(cursor.NewFitzRasterizer(t.TempDir(), false)))
	dst := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))

	err := c.Compose(solid(1920, 1080, green), frameState(), dst)
	assert.ErrorIs(t, err, cursor.ErrMissingAsset)
}
