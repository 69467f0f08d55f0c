package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayRamp(t *testing.T) *Buffer {
	t.Helper()
	return makeBuffer(t, 2, 2,
		[4]uint8{0, 0, 0, 255},
		[4]uint8{255, 255, 255, 255},
		[4]uint8{100, 100, 100, 255},
		[4]uint8{200, 200, 200, 255},
	)
}

func TestRunTwoColorReduction(t *testing.T) {
	base := grayRamp(t)
	buf, palette, err := Run(base, Parameters{Contrast: 1.0, ColorCount: 4})
	require.NoError(t, err)

	want := makeBuffer(t, 2, 2,
		[4]uint8{0, 0, 0, 255},
		[4]uint8{255, 255, 255, 255},
		[4]uint8{0, 0, 0, 255},
		[4]uint8{255, 255, 255, 255},
	)
	assert.Equal(t, want.Pix, buf.Pix)

	require.Len(t, palette, 2)
	assert.Equal(t, Entry{MakeKey(0, 0, 0), 2}, palette[0])
	assert.Equal(t, Entry{MakeKey(255, 255, 255), 2}, palette[1])
}

func TestRunRemapAfterQuantization(t *testing.T) {
	base := grayRamp(t)
	buf, palette, err := Run(base, Parameters{
		Contrast:   1.0,
		ColorCount: 4,
		Mapping:    Mapping{"#000000": "#ff0000"},
	})
	require.NoError(t, err)

	require.Len(t, palette, 2)
	assert.Equal(t, Entry{MakeKey(255, 0, 0), 2}, palette[0])
	assert.Equal(t, Entry{MakeKey(255, 255, 255), 2}, palette[1])

	r, g, b := palette[0].Color.RGB()
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	assert.Equal(t, uint8(255), buf.Pix[3])
}

func TestRunMappingMissesOriginalColors(t *testing.T) {
	// The mapping is keyed on post-quantization colors; an entry for an
	// original color that quantization removes has no effect.
	base := grayRamp(t)
	_, palette, err := Run(base, Parameters{
		Contrast:   1.0,
		ColorCount: 4,
		Mapping:    Mapping{"#646464": "#ff0000"}, // (100,100,100) pre-quantization
	})
	require.NoError(t, err)
	require.Len(t, palette, 2)
	assert.Equal(t, MakeKey(0, 0, 0), palette[0].Color)
}

func TestRunDeterministic(t *testing.T) {
	base := grayRamp(t)
	params := Parameters{
		Contrast:   1.3,
		ColorCount: 8,
		Mapping:    Mapping{"#000000": "#101010"},
	}

	first, firstPalette, err := Run(base, params)
	require.NoError(t, err)
	second, secondPalette, err := Run(base, params)
	require.NoError(t, err)

	assert.Equal(t, first.Pix, second.Pix)
	assert.Equal(t, firstPalette, secondPalette)
}

func TestRunDoesNotMutateBase(t *testing.T) {
	base := grayRamp(t)
	orig := base.Clone()

	_, _, err := Run(base, Parameters{Contrast: 2.0, ColorCount: 2})
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, base.Pix)
}

func TestRunQuantizesAtEqualTargetCount(t *testing.T) {
	// A target equal to the distinct count still quantizes: the four ramp
	// values snap to the two-level grid instead of surviving untouched.
	base := grayRamp(t)
	buf, palette, err := Run(base, Parameters{Contrast: 1.0, ColorCount: 4})
	require.NoError(t, err)
	assert.NotEqual(t, base.Pix, buf.Pix)
	require.Len(t, palette, 2)
	assert.Equal(t, MakeKey(0, 0, 0), palette[0].Color)
	assert.Equal(t, MakeKey(255, 255, 255), palette[1].Color)
}

func TestRunSkipsQuantizationWhenCountCovers(t *testing.T) {
	// Four distinct colors and a target of five: quantization must not run,
	// so the odd values survive.
	base := makeBuffer(t, 2, 2,
		[4]uint8{13, 13, 13, 255},
		[4]uint8{77, 77, 77, 255},
		[4]uint8{130, 130, 130, 255},
		[4]uint8{201, 201, 201, 255},
	)
	buf, palette, err := Run(base, Parameters{Contrast: 1.0, ColorCount: 5})
	require.NoError(t, err)
	assert.Equal(t, base.Pix, buf.Pix)
	assert.Len(t, palette, 4)
}

func TestRunAllStagesSkippedReturnsCopy(t *testing.T) {
	base := grayRamp(t)
	buf, _, err := Run(base, Parameters{Contrast: 1.0, ColorCount: 1000})
	require.NoError(t, err)

	assert.Equal(t, base.Pix, buf.Pix)
	buf.Pix[0] = 77
	assert.Equal(t, uint8(0), base.Pix[0], "returned buffer must not alias base")
}

func TestRunShapeMismatch(t *testing.T) {
	b := &Buffer{Width: 4, Height: 4, Pix: make([]uint8, 10)}
	_, _, err := Run(b, Parameters{Contrast: 1.0, ColorCount: 16})
	require.ErrorIs(t, err, ErrBufferSize)
}
