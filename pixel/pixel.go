/*
Package pixel implements the pixel-art conversion pipeline: nearest-neighbor
downsampling, linear contrast adjustment, uniform grid color quantization,
exact color remapping and frequency-sorted palette extraction.

Buffers hold flat RGBA data with 8 bits per channel. Every stage allocates a
new buffer and leaves its input untouched, so a cached base buffer can be fed
through the pipeline any number of times with different parameters without
accumulating rounding error.
*/
package pixel

import (
	"errors"
	"fmt"
)

const channels = 4

// ErrBufferSize is returned when a buffer's pixel data does not match its
// declared dimensions. It indicates a caller bug rather than bad user input.
var ErrBufferSize = errors.New("pixel: buffer size does not match dimensions")

// Buffer is a width by height raster of 8-bit RGBA pixels stored as a flat
// slice in row-major order.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer returns an all-zero buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*channels),
	}
}

// Clone returns an independently owned copy of b.
func (b *Buffer) Clone() *Buffer {
	dup := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(dup.Pix, b.Pix)
	return dup
}

func (b *Buffer) check() error {
	if b.Width < 1 || b.Height < 1 || len(b.Pix) != b.Width*b.Height*channels {
		return fmt.Errorf("%w: %dx%d with %d bytes", ErrBufferSize, b.Width, b.Height, len(b.Pix))
	}
	return nil
}
