package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/cursorcast/internal/analyzer"
	"github.com/ivlev/cursorcast/internal/config"
	"github.com/ivlev/cursorcast/internal/cursor"
	"github.com/ivlev/cursorcast/internal/effects"
	"github.com/ivlev/cursorcast/internal/recording"
	"github.com/ivlev/cursorcast/internal/renderer"
	"github.com/ivlev/cursorcast/internal/source"
	"github.com/ivlev/cursorcast/internal/system"
	"github.com/ivlev/cursorcast/internal/video"
)

var ErrNoFramesRendered = errors.New("no frames rendered")

// Progress receives a monotonically increasing percentage and a stage name.
type Progress func(percent float64, status string)

// Pipeline milestones.
const (
	StageAnalyze           = "analyze"
	StageExtract           = "extract"
	StagePrepareCursor     = "prepare-cursor"
	StageProcessMotionData = "process-motion-data"
	StageRenderStart       = "render-start"
	StageRender            = "render"
	StageRenderEnd         = "render-end"
	StageEncode            = "encode"
	StageComplete          = "complete"
)

const (
	renderFrom = 35.0
	renderTo   = 90.0
)

type VideoProject struct {
	Config     *config.Config
	Meta       *recording.Metadata
	Encoder    video.VideoEncoder
	Rasterizer cursor.Rasterizer
	Progress   Progress

	tempDir string
	last    float64
}

func NewVideoProject(cfg *config.Config, meta *recording.Metadata, ve video.VideoEncoder, r cursor.Rasterizer) *VideoProject {
	return &VideoProject{
		Config:     cfg,
		Meta:       meta,
		Encoder:    ve,
		Rasterizer: r,
	}
}

// report forwards a milestone, never letting the percentage go backwards.
func (p *VideoProject) report(percent float64, status string) {
	if percent < p.last {
		percent = p.last
	}
	p.last = percent
	if p.Progress != nil {
		p.Progress(percent, status)
	}
}

// applyOverrides lets the recording's own zoom, cursor and blur blocks win
// over the run configuration. A feature switched off for the run (for
// example -no-zoom) stays off whatever the recording says.
func (p *VideoProject) applyOverrides() {
	if z := p.Meta.Zoom; z != nil {
		enabled := p.Config.Zoom.Enabled
		p.Config.Zoom = *z
		p.Config.Zoom.Enabled = z.Enabled && enabled
		p.Config.Zoom.Normalize()
	}
	if c := p.Meta.Cursor; c != nil {
		p.Config.Cursor = *c
		p.Config.Cursor.Normalize()
	}
	if b := p.Meta.Blur; b != nil {
		enabled := p.Config.Blur.Enabled
		p.Config.Blur = *b
		p.Config.Blur.Enabled = b.Enabled && enabled
		p.Config.Blur.Normalize()
	}
}

// motionData returns the zoom sections and cursor keyframes, deriving
// whichever the recording lacks from its raw mouse samples.
func (p *VideoProject) motionData() ([]recording.ZoomSection, []recording.CursorKeyframe, error) {
	info := p.Meta.Video
	sections := p.Meta.Sections
	if len(sections) == 0 && len(p.Meta.Mouse) > 0 && p.Config.Zoom.Enabled {
		a, err := analyzer.NewAnalyzer(p.Config.Zoom.Analyzer, p.Config.Zoom, info.Width, info.Height, info.Duration)
		if err != nil {
			return nil, nil, err
		}
		sections = a.Analyze(p.Meta.Mouse)
		fmt.Printf("[*] Найдено секций зума: %d\n", len(sections))
	}

	keyframes := p.Meta.Keyframes
	if len(keyframes) == 0 && len(p.Meta.Mouse) > 0 {
		keyframes = renderer.KeyframesFromEvents(p.Meta.Mouse, p.Config.Cursor.StaticThreshold)
		fmt.Printf("[*] Ключевых кадров курсора из событий мыши: %d\n", len(keyframes))
	}
	return sections, keyframes, nil
}

// fillVideoInfo completes missing video fields from the file itself.
func (p *VideoProject) fillVideoInfo(ctx context.Context, videoPath string) error {
	v := &p.Meta.Video
	if v.FPS > 0 && v.Width > 0 && v.Height > 0 && v.Duration > 0 {
		return nil
	}
	info, err := p.Encoder.Probe(ctx, videoPath)
	if err != nil {
		return fmt.Errorf("не удалось получить параметры видео: %w", err)
	}
	if v.FPS <= 0 {
		v.FPS = int(math.Round(info.FPS))
	}
	if v.Width <= 0 || v.Height <= 0 {
		v.Width, v.Height = info.Width, info.Height
	}
	if v.Duration <= 0 {
		v.Duration = info.Duration
	}
	return nil
}

func (p *VideoProject) Run(ctx context.Context) error {
	startTime := time.Now()
	p.last = 0

	var err error
	p.tempDir, err = os.MkdirTemp("", "cursorcast_")
	if err != nil {
		return err
	}
	if p.Config.KeepFrames {
		fmt.Printf("[*] Кадры сохраняются в: %s\n", p.tempDir)
	} else {
		defer os.RemoveAll(p.tempDir)
	}

	p.applyOverrides()

	videoPath := p.Config.VideoPath
	if videoPath == "" {
		videoPath = p.Meta.Video.Path
	}
	if videoPath == "" {
		return fmt.Errorf("не указан путь к видео")
	}
	if err := p.fillVideoInfo(ctx, videoPath); err != nil {
		return err
	}
	if err := p.Meta.Validate(); err != nil {
		return err
	}
	info := p.Meta.Video

	fmt.Println("--- [PROJECT: CURSORCAST] ---")
	fmt.Printf("[*] Запись: %s | Видео: %s\n", p.Config.InputPath, videoPath)
	fmt.Printf("[*] Источник: %dx%d @ %d FPS | Длительность: %.0fms\n", info.Width, info.Height, info.FPS, info.Duration)
	fmt.Printf("[*] Холст: %dx%d | Потоки: %d\n", p.Config.Width, p.Config.Height, p.Config.Workers)
	fmt.Println("-----------------------------")

	p.report(5, StageAnalyze)
	sections, keyframes, err := p.motionData()
	if err != nil {
		return err
	}

	p.report(10, StageExtract)
	extractStart := time.Now()
	src, err := source.NewFrameDir(filepath.Join(p.tempDir, "src"))
	if err != nil {
		return err
	}
	defer src.Close()
	if err := p.Encoder.ExtractFrames(ctx, videoPath, src.Pattern(), info.FPS); err != nil {
		return fmt.Errorf("ошибка извлечения кадров: %w", err)
	}
	extractTime := time.Since(extractStart)

	expected := video.ExpectedFrames(info.Duration, info.FPS)
	decoded := src.FrameCount()
	frames, mismatch := ReconcileFrameCount(expected, decoded)
	if mismatch {
		log.Printf("[!] Длительность (%d кадров) не совпадает с извлечёнными кадрами (%d), используем %d", expected, decoded, frames)
	}
	if frames == 0 {
		return fmt.Errorf("видео не содержит кадров: %w", ErrNoFramesRendered)
	}
	if w, h, err := src.Dimensions(); err != nil {
		return fmt.Errorf("ошибка чтения кадра: %w", err)
	} else if w != info.Width || h != info.Height {
		log.Printf("[!] Размер кадров %dx%d не совпадает с метаданными %dx%d, координаты курсора могут сместиться", w, h, info.Width, info.Height)
	}

	p.report(25, StagePrepareCursor)
	cache := cursor.NewCache(p.Rasterizer)
	fit := effects.ContainFit(info.Width, info.Height, p.Config.Width, p.Config.Height)
	baseSize := int(math.Round(p.Config.Cursor.Size * fit.Scale))
	fallback, _ := cursor.ParseShape(p.Config.Cursor.Shape)
	if err := cache.Preload(recording.KeyframeShapes(keyframes, fallback), baseSize); err != nil {
		return fmt.Errorf("ошибка подготовки курсора: %w", err)
	}

	p.report(30, StageProcessMotionData)
	synth, err := renderer.NewSynthesizer(renderer.Input{
		Keyframes: keyframes,
		Clicks:    p.Meta.Clicks,
		Sections:  sections,
		FPS:       info.FPS,
		Duration:  info.Duration,
		Frames:    frames,
		Width:     info.Width,
		Height:    info.Height,
		Cursor:    p.Config.Cursor,
		Zoom:      p.Config.Zoom,
		Click:     p.Config.Click,
	})
	if err != nil {
		return fmt.Errorf("ошибка обработки данных движения: %w", err)
	}

	out, err := source.NewFrameDir(filepath.Join(p.tempDir, "out"))
	if err != nil {
		return err
	}
	defer out.Close()

	p.report(renderFrom, StageRenderStart)
	renderStart := time.Now()
	rendered, err := RenderFrames(ctx, RenderJob{
		Frames:     synth.FrameCount(),
		States:     synth,
		Source:     src,
		Sink:       out,
		Compositor: effects.NewCompositor(p.Config, cache),
		Canvas:     image.Pt(p.Config.Width, p.Config.Height),
		Workers:    p.Config.Workers,
		BatchSize:  p.Config.BatchSize,
		OnBatch: func(done, total int) {
			p.report(renderFrom+(renderTo-renderFrom)*float64(done)/float64(total), StageRender)
			fmt.Printf("[>] Готово: %d/%d\n", done, total)
		},
	})
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)
	p.report(renderTo, StageRenderEnd)

	if skipped := synth.FrameCount() - rendered; skipped > 0 {
		log.Printf("[!] Пропущено кадров: %d", skipped)
		if _, err := out.Compact(); err != nil {
			return fmt.Errorf("ошибка перенумерации кадров: %w", err)
		}
	}

	p.report(95, StageEncode)
	fmt.Println("[*] Сборка финального видео...")
	encodeStart := time.Now()
	if err := p.Encoder.EncodeFrames(ctx, out.Pattern(), info.FPS, p.Config.OutputVideo); err != nil {
		return fmt.Errorf("ошибка сборки финального видео: %w", err)
	}
	encodeTime := time.Since(encodeStart)
	p.report(100, StageComplete)

	if p.Config.ShowStats {
		p.writeStats(stats{
			total:   time.Since(startTime),
			extract: extractTime,
			render:  renderTime,
			encode:  encodeTime,
			frames:  rendered,
		})
	}
	return nil
}

// ReconcileFrameCount picks how many frames to render when the recorded
// duration and the decoded frame count disagree: the shorter one wins.
// A zero decoded count means the decoder reported nothing and expected is
// kept.
func ReconcileFrameCount(expected, decoded int) (int, bool) {
	switch {
	case decoded <= 0:
		return max(expected, 0), false
	case expected <= 0:
		return decoded, false
	case decoded == expected:
		return expected, false
	default:
		return min(expected, decoded), true
	}
}

// StateSource resolves the frame state of one output frame.
type StateSource interface {
	StateAt(i int) renderer.FrameState
}

// Compositor draws one frame onto a canvas.
type Compositor interface {
	Compose(src image.Image, state renderer.FrameState, dst *image.RGBA) error
}

// RenderJob describes one parallel compositing pass.
type RenderJob struct {
	Frames     int
	States     StateSource
	Source     source.FrameSource
	Sink       source.FrameSink
	Compositor Compositor
	Canvas     image.Point
	Workers    int
	BatchSize  int // frames in flight; defaults to 4 per worker
	OnBatch    func(done, total int)
}

// RenderFrames composites every frame of the job with a bounded pool,
// one batch at a time. Failed frames are logged and skipped. On
// cancellation no further frames are submitted and in-flight ones finish.
// It returns the number of frames written.
func RenderFrames(ctx context.Context, job RenderJob) (int, error) {
	workers := max(job.Workers, 1)
	batch := job.BatchSize
	if batch < 1 {
		batch = workers * 4
	}

	var rendered atomic.Int64
	for start := 0; start < job.Frames; start += batch {
		if ctx.Err() != nil {
			break
		}
		end := min(start+batch, job.Frames)

		var g errgroup.Group
		g.SetLimit(workers)
		for i := start; i < end; i++ {
			if ctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := renderFrame(job, i); err != nil {
					if errors.Is(err, source.ErrFrameNotFound) {
						log.Printf("[!] Кадр %d пропущен: %v", i, err)
					} else {
						log.Printf("[!] Ошибка рендеринга кадра %d: %v", i, err)
					}
					return nil
				}
				rendered.Add(1)
				return nil
			})
		}
		g.Wait()

		if job.OnBatch != nil {
			job.OnBatch(end, job.Frames)
		}
	}

	n := int(rendered.Load())
	if err := ctx.Err(); err != nil {
		return n, err
	}
	if n == 0 {
		return 0, ErrNoFramesRendered
	}
	return n, nil
}

func renderFrame(job RenderJob, i int) error {
	src, err := job.Source.Frame(i)
	if err != nil {
		return err
	}
	dst := system.GetImage(job.Canvas)
	defer system.PutImage(dst)

	if err := job.Compositor.Compose(src, job.States.StateAt(i), dst); err != nil {
		return err
	}
	return job.Sink.WriteFrame(i, dst)
}
