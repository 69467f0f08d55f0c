/*
Package export renders a finished pixel buffer into an image container. The
buffer is raised to a display canvas by duplicating each pixel scale times in
both directions before encoding; the conversion pipeline itself never
upscales.
*/
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	xdraw "golang.org/x/image/draw"

	"github.com/CBibop12/pixelator/pixel"
)

const maxGIFColors = 256

// Image converts b into an NRGBA image upscaled by scale using
// nearest-neighbor duplication. A scale below 1 is treated as 1.
func Image(b *pixel.Buffer, scale int) (*image.NRGBA, error) {
	if b.Width < 1 || b.Height < 1 || len(b.Pix) != b.Width*b.Height*4 {
		return nil, fmt.Errorf("export: %w", pixel.ErrBufferSize)
	}

	src := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(src.Pix, b.Pix)

	if scale <= 1 {
		return src, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Width*scale, b.Height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// PNG encodes b to w as a PNG, upscaled by scale.
func PNG(w io.Writer, b *pixel.Buffer, scale int) error {
	m, err := Image(b, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, m)
}

// GIF encodes b to w as a single-frame GIF, upscaled by scale. A buffer
// within the GIF color limit keeps its exact palette; anything larger is
// palettized with a median cut first. The pipeline's own grid quantizer is
// not involved here.
func GIF(w io.Writer, b *pixel.Buffer, scale int) error {
	entries, err := pixel.Analyze(b)
	if err != nil {
		return err
	}

	m, err := Image(b, scale)
	if err != nil {
		return err
	}

	var p color.Palette
	if len(entries) <= maxGIFColors {
		p = make(color.Palette, 0, len(entries))
		for _, e := range entries {
			r, g, b := e.Color.RGB()
			p = append(p, color.NRGBA{R: r, G: g, B: b, A: 0xff})
		}
	} else {
		q := quantize.MedianCutQuantizer{}
		p = q.Quantize(make(color.Palette, 0, maxGIFColors), m)
	}

	pm := image.NewPaletted(m.Bounds(), p)
	draw.Draw(pm, pm.Bounds(), m, image.Point{}, draw.Src)

	return gif.Encode(w, pm, nil)
}
