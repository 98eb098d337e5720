package source

import (
	"errors"
	"image"
)

var ErrFrameNotFound = errors.New("frame not found")

// FrameSource yields decoded frames by zero-based index.
type FrameSource interface {
	FrameCount() int
	Frame(index int) (image.Image, error)
	Close() error
}

// FrameSink stores rendered frames by zero-based index.
type FrameSink interface {
	WriteFrame(index int, img image.Image) error
}
