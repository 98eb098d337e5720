package effects

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/renderer"
)

// minCursorSize keeps click and letterbox scaling from shrinking the glyph
// to nothing.
const minCursorSize = 4

// Compositor draws one source frame plus its state onto a fixed canvas.
// It holds no per-frame state and is safe for concurrent use.
type Compositor struct {
	CanvasWidth  int
	CanvasHeight int
	Cursors      *cursor.Cache
	Blur         config.BlurConfig
	Scaler       xdraw.Scaler
}

func NewCompositor(cfg *config.Config, cursors *cursor.Cache) *Compositor {
	return &Compositor{
		CanvasWidth:  cfg.Width,
		CanvasHeight: cfg.Height,
		Cursors:      cursors,
		Blur:         cfg.Blur,
		Scaler:       ScalerFor(cfg.ScaleQuality),
	}
}

// ScalerFor maps the configured scale quality to a resampler.
func ScalerFor(quality string) xdraw.Scaler {
	switch quality {
	case "fast":
		return xdraw.ApproxBiLinear
	case "nearest":
		return xdraw.NearestNeighbor
	default:
		return xdraw.CatmullRom
	}
}

// Compose renders src with state into dst, which must be canvas sized.
// state is read only; zoom rebasing happens on a local copy.
func (c *Compositor) Compose(src image.Image, state renderer.FrameState, dst *image.RGBA) error {
	sb := src.Bounds()
	if sb.Empty() {
		return fmt.Errorf("frame %d: empty source image", state.Index)
	}

	view := sb
	local := state
	if state.Zoom.Active() {
		crop := CropRect(sb.Dx(), sb.Dy(), state.Zoom.CenterX, state.Zoom.CenterY, state.Zoom.Level)
		view = crop.Add(sb.Min)
		local = state.WithCursor(state.CursorX-float64(crop.Min.X), state.CursorY-float64(crop.Min.Y))
	}

	fit := ContainFit(view.Dx(), view.Dy(), c.CanvasWidth, c.CanvasHeight)
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	scaler := c.Scaler
	if scaler == nil {
		scaler = xdraw.CatmullRom
	}
	scaler.Scale(dst, fit.Rect().Add(dst.Bounds().Min), src, view, draw.Src, nil)

	if !local.CursorVisible || c.Cursors == nil {
		return nil
	}
	x, y := fit.Map(local.CursorX, local.CursorY)
	return c.drawCursor(dst, local, fit, x, y)
}

func (c *Compositor) cursorSize(state renderer.FrameState, fit Fit) int {
	size := state.CursorSize * fit.Scale
	if state.ClickScale > 0 {
		size *= state.ClickScale
	}
	limit := math.Min(float64(c.CanvasWidth), float64(c.CanvasHeight)) / 2
	return int(math.Round(math.Max(minCursorSize, math.Min(size, limit))))
}

func (c *Compositor) drawCursor(dst *image.RGBA, state renderer.FrameState, fit Fit, x, y float64) error {
	glyph, err := c.Cursors.Get(state.CursorShape, c.cursorSize(state, fit))
	if err != nil {
		return err
	}

	img, origin := MotionBlur(glyph.Image, state.CursorVelocityX*fit.Scale, state.CursorVelocityY*fit.Scale, c.Blur)
	hot := glyph.Hotspot.Add(origin)

	// the hotspot stays on the canvas even when the glyph overflows it
	hx := clampInt(int(math.Round(x)), 0, c.CanvasWidth-1)
	hy := clampInt(int(math.Round(y)), 0, c.CanvasHeight-1)

	topLeft := dst.Bounds().Min.Add(image.Pt(hx, hy)).Sub(hot)
	r := image.Rectangle{Min: topLeft, Max: topLeft.Add(img.Bounds().Size())}
	draw.Draw(dst, r, img, img.Bounds().Min, draw.Over)
	return nil
}
