package pixelator

import (
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/dominantcolor"

	"github.com/CBibop12/pixelator/export"
	"github.com/CBibop12/pixelator/pixel"
	"github.com/CBibop12/pixelator/project"
)

// decodeFile reads and decodes an image, returning it together with the
// SHA1 of the file contents used to identify source images in the store.
func decodeFile(file string) (image.Image, string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return nil, "", fmt.Errorf("pixelator: decoding %s: %w", file, err)
	}
	return m, fmt.Sprintf("%X", h.Sum(nil)), nil
}

// Base resamples m down to the configured target size, producing the buffer
// every recomputation restarts from.
func (p *Pixelator) Base(m image.Image) *pixel.Buffer {
	b := m.Bounds()
	dims := project.TargetSize(
		p.config.Pipeline.SizeMode,
		p.config.Pipeline.SizeValue,
		project.Dimensions{Width: p.config.Pipeline.Width, Height: p.config.Pipeline.Height},
		project.Dimensions{Width: b.Dx(), Height: b.Dy()},
	)
	return pixel.Resample(m, dims.Width, dims.Height)
}

func (p *Pixelator) writeImage(out string, buf *pixel.Buffer) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(out)) {
	case ".gif":
		return export.GIF(f, buf, p.config.Export.Scale)
	default:
		return export.PNG(f, buf, p.config.Export.Scale)
	}
}

// ConvertFile converts one image file and writes the result in the
// container implied by out's extension (GIF, or PNG for anything else).
func (p *Pixelator) ConvertFile(in, out string) error {
	m, _, err := decodeFile(in)
	if err != nil {
		return err
	}

	base := p.Base(m)
	buf, palette, err := pixel.Run(base, p.config.Parameters())
	if err != nil {
		return err
	}

	p.logger.Printf("%s: %dx%d, %d colors\n", in, buf.Width, buf.Height, len(palette))

	return p.writeImage(out, buf)
}

// Palette converts one image file and returns the palette of the result
// without writing anything.
func (p *Pixelator) Palette(in string) ([]pixel.Entry, error) {
	m, _, err := decodeFile(in)
	if err != nil {
		return nil, err
	}

	_, palette, err := pixel.Run(p.Base(m), p.config.Parameters())
	return palette, err
}

// Dominant returns the dominant color of the source image, before any
// processing, as a hex string.
func (p *Pixelator) Dominant(in string) (string, error) {
	m, _, err := decodeFile(in)
	if err != nil {
		return "", err
	}
	return dominantcolor.Hex(dominantcolor.Find(m)), nil
}

// SaveProject snapshots the file's base buffer together with the current
// parameters under the given name.
func (p *Pixelator) SaveProject(name, in string) error {
	m, sha, err := decodeFile(in)
	if err != nil {
		return err
	}

	base := p.Base(m)
	maxColors, err := pixel.Distinct(base)
	if err != nil {
		return err
	}

	dims := project.Dimensions{Width: base.Width, Height: base.Height}
	return p.store.SaveProject(name, sha, project.FromBuffer(base, p.config.SnapshotParameters(dims, maxColors)))
}

// LoadProject renders a saved snapshot with the parameters recorded in it
// and writes the result to out.
func (p *Pixelator) LoadProject(name, out string) error {
	snap, err := p.store.LoadProject(name)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("pixelator: no project named %q", name)
	}

	base, err := snap.Buffer()
	if err != nil {
		return err
	}

	buf, palette, err := pixel.Run(base, snap.Parameters.Pipeline())
	if err != nil {
		return err
	}

	p.logger.Printf("%s: %dx%d, %d colors\n", name, buf.Width, buf.Height, len(palette))

	return p.writeImage(out, buf)
}
