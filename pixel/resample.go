package pixel

import (
	"image"
	"image/color"
)

// Resample scales src to width by height using nearest-neighbor sampling
// under uniform scale factors. No smoothing is applied so hard edges
// survive, which is what pixel art wants. Alpha is carried through from the
// sampled source pixel. Both targets must be at least 1.
func Resample(src image.Image, width, height int) *Buffer {
	bounds := src.Bounds()
	sw, sh := bounds.Dx(), bounds.Dy()
	xScale := float64(sw) / float64(width)
	yScale := float64(sh) / float64(height)

	out := NewBuffer(width, height)

	// Fast path over the backing slice for NRGBA, which is what the PNG
	// decoder produces for images with alpha.
	if m, ok := src.(*image.NRGBA); ok {
		i := 0
		for y := 0; y < height; y++ {
			sy := int(float64(y) * yScale)
			if sy > sh-1 {
				sy = sh - 1
			}
			row := m.Pix[sy*m.Stride:]
			for x := 0; x < width; x++ {
				sx := int(float64(x) * xScale)
				if sx > sw-1 {
					sx = sw - 1
				}
				copy(out.Pix[i:i+channels], row[sx*channels:])
				i += channels
			}
		}
		return out
	}

	i := 0
	for y := 0; y < height; y++ {
		sy := int(float64(y) * yScale)
		if sy > sh-1 {
			sy = sh - 1
		}
		for x := 0; x < width; x++ {
			sx := int(float64(x) * xScale)
			if sx > sw-1 {
				sx = sw - 1
			}
			c := color.NRGBAModel.Convert(src.At(bounds.Min.X+sx, bounds.Min.Y+sy)).(color.NRGBA)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = c.A
			i += channels
		}
	}
	return out
}
