package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Info is what the pipeline needs to know about a captured video.
type Info struct {
	Width    int
	Height   int
	FPS      float64
	Duration float64 // ms
	Frames   int     // 0 when the container does not say
}

type VideoEncoder interface {
	Probe(ctx context.Context, path string) (*Info, error)
	ExtractFrames(ctx context.Context, videoPath, pattern string, fps int) error
	EncodeFrames(ctx context.Context, pattern string, fps int, outputPath string) error
}

// FFmpegEncoder drives the ffmpeg and ffprobe binaries.
type FFmpegEncoder struct {
	Encoder string // h264_videotoolbox, h264_nvenc, libx264, ...
	Quality int
}

func NewFFmpegEncoder(encoder string, quality int) *FFmpegEncoder {
	return &FFmpegEncoder{Encoder: encoder, Quality: quality}
}

type probeResult struct {
	Streams []struct {
		CodecType    string `json:"codec_type"`
		Width        int    `json:"width"`
		Height       int    `json:"height"`
		AvgFrameRate string `json:"avg_frame_rate"`
		RFrameRate   string `json:"r_frame_rate"`
		NbFrames     string `json:"nb_frames"`
		Duration     string `json:"duration"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func (e *FFmpegEncoder) Probe(ctx context.Context, path string) (*Info, error) {
	type result struct {
		out string
		err error
	}
	ch := make(chan result, 1)
	go func() {
		out, err := ffmpeg.Probe(path)
		ch <- result{out, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("ffprobe %s: %w", path, r.err)
		}
		return parseProbe([]byte(r.out))
	}
}

func parseProbe(data []byte) (*Info, error) {
	var pr probeResult
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range pr.Streams {
		if s.CodecType != "video" {
			continue
		}
		info := &Info{Width: s.Width, Height: s.Height}
		info.FPS = parseRate(s.AvgFrameRate)
		if info.FPS == 0 {
			info.FPS = parseRate(s.RFrameRate)
		}
		info.Frames, _ = strconv.Atoi(s.NbFrames)

		dur := s.Duration
		if dur == "" {
			dur = pr.Format.Duration
		}
		if sec, err := strconv.ParseFloat(dur, 64); err == nil {
			info.Duration = sec * 1000
		}
		return info, nil
	}
	return nil, fmt.Errorf("no video stream found")
}

// parseRate reads ffprobe's "30000/1001" style rates.
func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

// ExtractFrames decodes videoPath into numbered images at fps.
func (e *FFmpegEncoder) ExtractFrames(ctx context.Context, videoPath, pattern string, fps int) error {
	return run(ctx, e.extractStream(videoPath, pattern, fps))
}

func (e *FFmpegEncoder) extractStream(videoPath, pattern string, fps int) *ffmpeg.Stream {
	return ffmpeg.Input(videoPath).
		Output(pattern, ffmpeg.KwArgs{
			"vf":           fmt.Sprintf("fps=%d", fps),
			"start_number": 1,
		}).
		OverWriteOutput()
}

// EncodeFrames encodes numbered images into an H.264 video.
func (e *FFmpegEncoder) EncodeFrames(ctx context.Context, pattern string, fps int, outputPath string) error {
	return run(ctx, e.encodeStream(pattern, fps, outputPath))
}

func (e *FFmpegEncoder) encodeStream(pattern string, fps int, outputPath string) *ffmpeg.Stream {
	out := ffmpeg.KwArgs{
		"c:v":     e.Encoder,
		"pix_fmt": "yuv420p",
		"r":       fps,
	}
	for k, v := range qualityArgs(e.Encoder, e.Quality) {
		out[k] = v
	}
	return ffmpeg.Input(pattern, ffmpeg.KwArgs{
		"f":            "image2",
		"framerate":    fps,
		"start_number": 1,
	}).
		Output(outputPath, out).
		OverWriteOutput()
}

// qualityArgs maps the quality knob onto each encoder's rate control.
func qualityArgs(encoder string, quality int) ffmpeg.KwArgs {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox does not take -q:v on every version, use bitrate
		return ffmpeg.KwArgs{"b:v": fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return ffmpeg.KwArgs{"cq": quality}
	default: // libx264
		return ffmpeg.KwArgs{"crf": quality, "preset": "medium"}
	}
}

// run executes the compiled command, killing it when ctx is done.
func run(ctx context.Context, s *ffmpeg.Stream) error {
	compiled := s.Compile()
	cmd := exec.CommandContext(ctx, compiled.Path, compiled.Args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg error: %w, output: %s", err, tail(stderr.String(), 2000))
	}
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// ExpectedFrames is the number of frames a video of durationMs at fps holds.
func ExpectedFrames(durationMs float64, fps int) int {
	if fps <= 0 || durationMs <= 0 {
		return 0
	}
	return int(math.Ceil(durationMs * float64(fps) / 1000))
}
