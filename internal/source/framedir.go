package source

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/anthonynsimon/bild/imgio"
)

// FramePattern names frame files. Numbering starts at 1, matching the
// default start number of ffmpeg's image2 muxer and demuxer.
const FramePattern = "frame_%06d.png"

// FrameDir is a directory of numbered PNG frames. It is both the source
// of extracted frames and the sink of rendered ones.
type FrameDir struct {
	Dir string
	enc png.Encoder
}

func NewFrameDir(dir string) (*FrameDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FrameDir{
		Dir: dir,
		enc: png.Encoder{CompressionLevel: png.BestSpeed},
	}, nil
}

// Pattern is the printf-style path handed to ffmpeg.
func (d *FrameDir) Pattern() string {
	return filepath.Join(d.Dir, FramePattern)
}

// Path returns the file of the zero-based frame index.
func (d *FrameDir) Path(index int) string {
	return filepath.Join(d.Dir, fmt.Sprintf(FramePattern, index+1))
}

func (d *FrameDir) Frame(index int) (image.Image, error) {
	path := d.Path(index)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %d", ErrFrameNotFound, index)
	}
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", index, err)
	}
	return img, nil
}

func (d *FrameDir) WriteFrame(index int, img image.Image) error {
	return imgio.Save(d.Path(index), img, d.encode)
}

func (d *FrameDir) encode(w io.Writer, img image.Image) error {
	return d.enc.Encode(w, img)
}

// frames lists the frame files present, sorted by number.
func (d *FrameDir) frames() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(d.Dir, "frame_*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// FrameCount returns how many frame files exist.
func (d *FrameDir) FrameCount() int {
	paths, err := d.frames()
	if err != nil {
		return 0
	}
	return len(paths)
}

// Dimensions reads the size of the first frame without decoding it.
func (d *FrameDir) Dimensions() (int, int, error) {
	f, err := os.Open(d.Path(0))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrFrameNotFound, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// Compact renumbers the frames present so they run 1..n without gaps and
// returns n. The image2 demuxer stops at the first missing number.
func (d *FrameDir) Compact() (int, error) {
	paths, err := d.frames()
	if err != nil {
		return 0, err
	}
	for i, p := range paths {
		want := d.Path(i)
		if p == want {
			continue
		}
		if err := os.Rename(p, want); err != nil {
			return i, fmt.Errorf("compact frames: %w", err)
		}
	}
	return len(paths), nil
}

func (d *FrameDir) Close() error {
	return nil
}
