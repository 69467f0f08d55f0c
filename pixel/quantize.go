package pixel

import "math"

// Levels returns the per-channel grid size used for a given target color
// count: the cube root of the count, rounded, and never below 2 so the grid
// step stays finite.
func Levels(colorCount int) int {
	levels := int(math.Round(math.Cbrt(float64(colorCount))))
	if levels < 2 {
		levels = 2
	}
	return levels
}

// Quantize snaps each R, G and B channel to a uniform grid of levels derived
// from colorCount. The achieved number of distinct colors is levels cubed,
// which only approximates colorCount; the approximation is deliberate and
// matches what a per-channel grid can express. Alpha is untouched.
//
// Quantizing an already-quantized buffer at the same level count returns an
// identical buffer.
func Quantize(b *Buffer, colorCount int) (*Buffer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	levels := Levels(colorCount)
	step := 255 / float64(levels-1)

	var lut [256]uint8
	for v := range lut {
		lut[v] = clamp8(math.Round(float64(v)/step) * step)
	}

	out := NewBuffer(b.Width, b.Height)
	for i := 0; i < len(b.Pix); i += channels {
		out.Pix[i+0] = lut[b.Pix[i+0]]
		out.Pix[i+1] = lut[b.Pix[i+1]]
		out.Pix[i+2] = lut[b.Pix[i+2]]
		out.Pix[i+3] = b.Pix[i+3]
	}
	return out, nil
}
