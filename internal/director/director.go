package director

import (
	"math"
	"sort"

	"github.com/ivlev/cursorcast/internal/recording"
	"github.com/ivlev/cursorcast/internal/smooth"
)

// ResolveOptions drives the zoom spring pass.
type ResolveOptions struct {
	FPS        int
	Duration   float64 // ms
	Width      int     // source frame size
	Height     int
	SmoothTime float64 // seconds
	Enabled    bool
}

// FrameCount returns ceil(Duration / frame interval).
func (o ResolveOptions) FrameCount() int {
	if o.FPS <= 0 || o.Duration <= 0 {
		return 0
	}
	return int(math.Ceil(o.Duration * float64(o.FPS) / 1000))
}

// SectionAt returns the section active at t, or the neutral section when
// none covers it. Sections must be ordered.
func SectionAt(sections []recording.ZoomSection, t float64, width, height int) recording.ZoomSection {
	i := sort.Search(len(sections), func(i int) bool {
		return sections[i].EndTime > t
	})
	if i < len(sections) && sections[i].Contains(t) {
		return sections[i]
	}
	n := recording.NeutralSection(width, height)
	n.StartTime, n.EndTime = t, t
	return n
}

// ResolveZoomRegions feeds each frame's target section into a spring and
// returns one smoothed region per frame. The pass is sequential: spring
// state carries from frame to frame and starts at the neutral view.
func ResolveZoomRegions(sections []recording.ZoomSection, opts ResolveOptions) []ZoomRegion {
	n := opts.FrameCount()
	if n == 0 {
		return nil
	}

	dt := 1 / float64(opts.FPS)
	regions := make([]ZoomRegion, n)

	if !opts.Enabled {
		for i := range regions {
			regions[i] = NeutralRegion(timestampAt(i, opts.FPS, opts.Duration), opts.Width, opts.Height)
		}
		return regions
	}

	w, h := float64(opts.Width), float64(opts.Height)
	center := smooth.NewSmoothPosition2D(w/2, h/2, opts.SmoothTime)
	scale := smooth.NewSmoothValue(1, opts.SmoothTime)

	for i := range regions {
		t := timestampAt(i, opts.FPS, opts.Duration)
		target := SectionAt(sections, t, opts.Width, opts.Height)

		center.SetTarget(target.CenterX, target.CenterY)
		scale.SetTarget(clampScale(target.Scale))
		if i > 0 {
			center.Update(dt)
			scale.Update(dt)
		}

		regions[i] = cropRegion(t, center.X, center.Y, scale.Current, w, h)
	}
	return regions
}

// timestampAt divides last so whole-millisecond frame times come out exact.
func timestampAt(i, fps int, duration float64) float64 {
	return math.Min(float64(i)*1000/float64(fps), duration)
}

func clampScale(s float64) float64 {
	if s < 1 || math.IsNaN(s) {
		return 1
	}
	return s
}

// cropRegion sizes the crop for scale and keeps it inside the frame. The
// spring itself is left unclamped.
func cropRegion(t, cx, cy, scale, w, h float64) ZoomRegion {
	scale = clampScale(scale)
	cw, ch := w/scale, h/scale
	return ZoomRegion{
		Timestamp:  t,
		CenterX:    clamp(cx, cw/2, w-cw/2),
		CenterY:    clamp(cy, ch/2, h-ch/2),
		CropWidth:  cw,
		CropHeight: ch,
		Scale:      scale,
	}
}

func clamp(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
