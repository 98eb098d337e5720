package cursor

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/blur"
	"github.com/gen2brain/go-fitz"
	xdraw "golang.org/x/image/draw"
)

var (
	// ErrMissingAsset means no glyph could be rasterized for a shape.
	ErrMissingAsset = errors.New("cursor asset missing")
)

// Rasterizer turns a shape into a square RGBA glyph of the given side.
type Rasterizer interface {
	Rasterize(shape Shape, size int) (*image.RGBA, error)
}

// FitzRasterizer renders SVG glyphs from Dir through MuPDF.
type FitzRasterizer struct {
	Dir    string
	Shadow bool
}

func NewFitzRasterizer(dir string, shadow bool) *FitzRasterizer {
	return &FitzRasterizer{Dir: dir, Shadow: shadow}
}

func (r *FitzRasterizer) Rasterize(shape Shape, size int) (*image.RGBA, error) {
	path := filepath.Join(r.Dir, string(shape)+".svg")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingAsset, path)
	}

	// Each call opens its own document so workers never share a MuPDF context.
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrMissingAsset, path, err)
	}
	defer doc.Close()

	bounds, err := doc.Bound(0)
	if err != nil {
		return nil, fmt.Errorf("%w: bounds %s: %v", ErrMissingAsset, path, err)
	}
	side := math.Max(float64(bounds.Dx()), float64(bounds.Dy()))
	if side <= 0 {
		side = ViewBox
	}
	// one point is one pixel at 72 DPI; oversample so the final resize only shrinks
	dpi := 72 * 2 * float64(size) / side
	raw, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return nil, fmt.Errorf("%w: render %s: %v", ErrMissingAsset, path, err)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(img, img.Bounds(), raw, raw.Bounds(), draw.Src, nil)
	if r.Shadow {
		img = WithShadow(img)
	}
	return img, nil
}

// WithShadow adds a soft drop shadow offset to the bottom right. The image
// grows only towards Max, so hotspots measured from Min stay valid.
func WithShadow(img *image.RGBA) *image.RGBA {
	radius := img.Bounds().Dx() / 16
	if radius < 1 {
		return img
	}
	bounds := img.Bounds()
	bounds.Max = bounds.Max.Add(image.Pt(radius, radius))
	shadow := image.NewRGBA(bounds)
	offset := image.Pt(radius/2, radius/2)
	draw.DrawMask(shadow, img.Bounds().Add(offset), image.NewUniform(color.NRGBA{A: 64}), image.Point{}, img, img.Bounds().Min, draw.Src)
	shadow = blur.Gaussian(shadow, float64(radius))
	draw.Draw(shadow, img.Bounds(), img, img.Bounds().Min, draw.Over)
	return shadow
}
