package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeBuffer builds a buffer from one RGBA quad per pixel, row-major.
func makeBuffer(t *testing.T, width, height int, pixels ...[4]uint8) *Buffer {
	t.Helper()
	require.Len(t, pixels, width*height)
	b := NewBuffer(width, height)
	for i, p := range pixels {
		copy(b.Pix[i*channels:], p[:])
	}
	return b
}

func TestContrastIdentity(t *testing.T) {
	in := makeBuffer(t, 2, 2,
		[4]uint8{0, 0, 0, 255},
		[4]uint8{255, 255, 255, 255},
		[4]uint8{100, 100, 100, 128},
		[4]uint8{200, 200, 200, 0},
	)
	out, err := Contrast(in, 1.0)
	require.NoError(t, err)
	assert.Equal(t, in.Pix, out.Pix)
}

func TestContrastValues(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		in     uint8
		want   uint8
	}{
		{"midpoint fixed", 2.0, 128, 128},
		{"stretch up", 2.0, 200, 255},
		{"stretch down", 2.0, 0, 0},
		{"stretch within range", 2.0, 100, 72},
		{"flatten", 0.5, 100, 114},
		{"flatten rounds", 0.5, 101, 115},
		{"zero flattens to midpoint", 0.0, 10, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := makeBuffer(t, 1, 1, [4]uint8{tt.in, tt.in, tt.in, 255})
			out, err := Contrast(in, tt.factor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Pix[0])
			assert.Equal(t, tt.want, out.Pix[1])
			assert.Equal(t, tt.want, out.Pix[2])
		})
	}
}

func TestContrastPreservesAlphaAndInput(t *testing.T) {
	in := makeBuffer(t, 1, 2,
		[4]uint8{10, 20, 30, 42},
		[4]uint8{250, 240, 230, 7},
	)
	orig := in.Clone()

	out, err := Contrast(in, 1.7)
	require.NoError(t, err)
	assert.Equal(t, uint8(42), out.Pix[3])
	assert.Equal(t, uint8(7), out.Pix[7])
	assert.Equal(t, orig.Pix, in.Pix, "input buffer must not be mutated")
}

func TestContrastShapeMismatch(t *testing.T) {
	b := &Buffer{Width: 2, Height: 2, Pix: make([]uint8, 15)}
	_, err := Contrast(b, 1.2)
	require.ErrorIs(t, err, ErrBufferSize)
}
