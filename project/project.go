/*
Package project implements the snapshot format used to save and restore a
conversion: the resampled base image together with the parameters that
produced the current result.

Snapshots marshal to JSON. Framing, versioning and storage are the caller's
concern; this package only guarantees the shape and its round trip to and
from a pixel buffer.
*/
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/CBibop12/pixelator/pixel"
)

// Size modes determine how the target dimensions derive from a single size
// value.
const (
	// SizeModeDimensions takes Dimensions as-is; SizeValue is unused.
	SizeModeDimensions = "dimensions"
	// SizeModeWidth fixes the width to SizeValue and derives the height
	// from the source aspect ratio.
	SizeModeWidth = "width"
	// SizeModeHeight fixes the height to SizeValue and derives the width.
	SizeModeHeight = "height"
)

// ErrShape is returned when a snapshot's pixel array disagrees with its
// declared dimensions.
var ErrShape = errors.New("project: pixel array does not match dimensions")

// Pixel is one RGBA sample in the snapshot's row-major 2D pixel array.
type Pixel struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Dimensions is a width and height pair.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Parameters mirrors the parameter block stored in a snapshot.
type Parameters struct {
	SizeMode     string            `json:"sizeMode"`
	SizeValue    int               `json:"sizeValue"`
	ColorCount   int               `json:"colorCount"`
	MaxColors    int               `json:"maxColors"`
	Contrast     float64           `json:"contrast"`
	Dimensions   Dimensions        `json:"dimensions"`
	ColorMapping map[string]string `json:"colorMapping"`
}

// Pipeline converts the stored parameters into the form the conversion
// pipeline consumes.
func (p Parameters) Pipeline() pixel.Parameters {
	return pixel.Parameters{
		Contrast:   p.Contrast,
		ColorCount: p.ColorCount,
		Mapping:    pixel.Mapping(p.ColorMapping),
	}
}

// Snapshot is a saved project: the base image plus its parameters.
type Snapshot struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Pixels     [][]Pixel  `json:"pixels"`
	Parameters Parameters `json:"parameters"`
}

// FromBuffer captures b and params as a snapshot.
func FromBuffer(b *pixel.Buffer, params Parameters) *Snapshot {
	rows := make([][]Pixel, b.Height)
	for y := 0; y < b.Height; y++ {
		row := make([]Pixel, b.Width)
		for x := 0; x < b.Width; x++ {
			i := (y*b.Width + x) * 4
			row[x] = Pixel{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
		}
		rows[y] = row
	}
	return &Snapshot{
		Width:      b.Width,
		Height:     b.Height,
		Pixels:     rows,
		Parameters: params,
	}
}

// Buffer reconstructs the base buffer from the snapshot's pixel array.
func (s *Snapshot) Buffer() (*pixel.Buffer, error) {
	if s.Width < 1 || s.Height < 1 || len(s.Pixels) != s.Height {
		return nil, fmt.Errorf("%w: %dx%d with %d rows", ErrShape, s.Width, s.Height, len(s.Pixels))
	}

	b := pixel.NewBuffer(s.Width, s.Height)
	for y, row := range s.Pixels {
		if len(row) != s.Width {
			return nil, fmt.Errorf("%w: row %d has %d pixels", ErrShape, y, len(row))
		}
		for x, p := range row {
			i := (y*s.Width + x) * 4
			b.Pix[i+0] = p.R
			b.Pix[i+1] = p.G
			b.Pix[i+2] = p.B
			b.Pix[i+3] = p.A
		}
	}
	return b, nil
}

// Encode writes the snapshot to w as JSON.
func Encode(w io.Writer, s *Snapshot) error {
	return json.NewEncoder(w).Encode(s)
}

// Decode reads a JSON snapshot from r.
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("project: decoding snapshot: %w", err)
	}
	return &s, nil
}

// TargetSize resolves the output dimensions for a source of the given size.
// Derived dimensions are rounded to the nearest integer and clamped to at
// least 1 so extreme aspect ratios cannot produce an empty raster.
func TargetSize(mode string, value int, dims Dimensions, src Dimensions) Dimensions {
	switch mode {
	case SizeModeWidth:
		h := int(math.Round(float64(value) * float64(src.Height) / float64(src.Width)))
		return Dimensions{Width: clampDim(value), Height: clampDim(h)}
	case SizeModeHeight:
		w := int(math.Round(float64(value) * float64(src.Width) / float64(src.Height)))
		return Dimensions{Width: clampDim(w), Height: clampDim(value)}
	default:
		return Dimensions{Width: clampDim(dims.Width), Height: clampDim(dims.Height)}
	}
}

func clampDim(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
