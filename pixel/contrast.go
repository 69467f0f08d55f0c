package pixel

import "math"

// Contrast applies a linear contrast transform about the channel midpoint:
// out = (in-128)*factor + 128, rounded and clamped to [0,255], on each of
// R, G and B. A factor of 1 is the identity. Alpha is untouched.
func Contrast(b *Buffer, factor float64) (*Buffer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	var lut [256]uint8
	for v := range lut {
		lut[v] = clamp8((float64(v)-128)*factor + 128)
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

func clamp8(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
