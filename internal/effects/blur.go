package effects

import (
	"image"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/ivlev/cursorcast/internal/config"
)

// BlurLength returns the kernel length for a cursor moving at (vx, vy)
// canvas px/s, or 0 when the motion is too slow to blur.
func BlurLength(vx, vy float64, cfg config.BlurConfig) int {
	speed := math.Hypot(vx, vy)
	if !cfg.Enabled || speed < cfg.SpeedThreshold || speed == 0 {
		return 0
	}
	n := int(math.Round(speed * cfg.Strength))
	if n < cfg.MinLength {
		n = cfg.MinLength
	}
	if n > cfg.MaxLength {
		n = cfg.MaxLength
	}
	if n < 2 {
		return 0
	}
	return n
}

// lineKernel builds an odd-sized square kernel with a line through its
// center at the given angle.
func lineKernel(length int, angle float64) *convolution.Kernel {
	n := length | 1
	c := n / 2
	k := convolution.NewKernel(n, n)
	cos, sin := math.Cos(angle), math.Sin(angle)
	for i := -c; i <= c; i++ {
		x := c + int(math.Round(float64(i)*cos))
		y := c + int(math.Round(float64(i)*sin))
		k.Matrix[y*n+x] = 1
	}
	return k
}

// MotionBlur smears img along the velocity vector. The result is padded on
// every side; the returned point is where img's origin lands inside it.
// Slow motion returns img untouched.
func MotionBlur(img *image.RGBA, vx, vy float64, cfg config.BlurConfig) (*image.RGBA, image.Point) {
	length := BlurLength(vx, vy, cfg)
	if length == 0 {
		return img, image.Point{}
	}

	k := lineKernel(length, math.Atan2(vy, vx))
	pad := k.Width / 2

	b := img.Bounds()
	padded := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*pad, b.Dy()+2*pad))
	draw.Draw(padded, b.Sub(b.Min).Add(image.Pt(pad, pad)), img, b.Min, draw.Src)

	out := convolution.Convolve(padded, k.Normalized(), &convolution.Options{Bias: 0, Wrap: false})
	if out == nil || out.Bounds().Empty() {
		return img, image.Point{}
	}
	return out, image.Pt(pad, pad)
}
