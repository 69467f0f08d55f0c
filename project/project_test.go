package project

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CBibop12/pixelator/pixel"
)

func sampleBuffer() *pixel.Buffer {
	b := pixel.NewBuffer(2, 2)
	copy(b.Pix, []uint8{
		0, 0, 0, 255,
		255, 255, 255, 255,
		100, 100, 100, 128,
		200, 200, 200, 255,
	})
	return b
}

func sampleParameters() Parameters {
	return Parameters{
		SizeMode:   SizeModeWidth,
		SizeValue:  2,
		ColorCount: 4,
		MaxColors:  4,
		Contrast:   1.0,
		Dimensions: Dimensions{Width: 2, Height: 2},
		ColorMapping: map[string]string{
			"#000000": "#ff0000",
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := sampleBuffer()
	snap := FromBuffer(in, sampleParameters())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, snap))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, snap.Parameters, decoded.Parameters)

	out, err := decoded.Buffer()
	require.NoError(t, err)
	assert.Equal(t, in.Width, out.Width)
	assert.Equal(t, in.Height, out.Height)
	assert.Equal(t, in.Pix, out.Pix)
}

func TestSnapshotDrivesPipeline(t *testing.T) {
	snap := FromBuffer(sampleBuffer(), sampleParameters())

	base, err := snap.Buffer()
	require.NoError(t, err)

	_, palette, err := pixel.Run(base, snap.Parameters.Pipeline())
	require.NoError(t, err)
	require.Len(t, palette, 2)
	assert.Equal(t, pixel.MakeKey(255, 0, 0), palette[0].Color)
	assert.Equal(t, pixel.MakeKey(255, 255, 255), palette[1].Color)
}

func TestSnapshotBadShape(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"missing row", Snapshot{Width: 2, Height: 2, Pixels: [][]Pixel{{{}, {}}}}},
		{"short row", Snapshot{Width: 2, Height: 1, Pixels: [][]Pixel{{{}}}}},
		{"zero width", Snapshot{Width: 0, Height: 1, Pixels: [][]Pixel{{}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.snap.Buffer()
			require.ErrorIs(t, err, ErrShape)
		})
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not json")))
	assert.Error(t, err)
}

func TestTargetSize(t *testing.T) {
	src := Dimensions{Width: 640, Height: 480}
	tests := []struct {
		name  string
		mode  string
		value int
		dims  Dimensions
		want  Dimensions
	}{
		{"exact", SizeModeDimensions, 0, Dimensions{64, 40}, Dimensions{64, 40}},
		{"by width", SizeModeWidth, 80, Dimensions{}, Dimensions{80, 60}},
		{"by height", SizeModeHeight, 60, Dimensions{}, Dimensions{80, 60}},
		{"rounds", SizeModeWidth, 33, Dimensions{}, Dimensions{33, 25}}, // 33*480/640 = 24.75
		{"clamps to one", SizeModeHeight, 1, Dimensions{}, Dimensions{1, 1}},
		{"unknown mode falls back", "diagonal", 9, Dimensions{10, 10}, Dimensions{10, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TargetSize(tt.mode, tt.value, tt.dims, src)
			assert.Equal(t, tt.want, got)
		})
	}
}
