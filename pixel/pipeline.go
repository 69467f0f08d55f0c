package pixel

// Parameters is an immutable snapshot of the pipeline settings, consumed
// once per Run.
type Parameters struct {
	// Contrast is the linear contrast factor, typically in [0.5, 2.0].
	Contrast float64
	// ColorCount is the requested number of output colors, at least 2.
	ColorCount int
	// Mapping substitutes exact post-quantization colors.
	Mapping Mapping
}

// Run executes the fixed pipeline over base: contrast, quantization,
// remapping, palette analysis. It always starts from base rather than from a
// previous run's output, so repeated runs with changed parameters never
// stack rounding error. base and the mapping are left untouched, and the
// returned buffer is independently owned.
//
// The contrast stage is skipped at factor 1, quantization is skipped when
// the target count strictly exceeds the distinct-color count, and remapping
// is skipped for an empty mapping. A target equal to the distinct count
// still quantizes and snaps the buffer to the grid.
func Run(base *Buffer, p Parameters) (*Buffer, []Entry, error) {
	if err := base.check(); err != nil {
		return nil, nil, err
	}

	buf := base
	var err error

	if p.Contrast != 1 {
		if buf, err = Contrast(buf, p.Contrast); err != nil {
			return nil, nil, err
		}
	}

	distinct, err := Distinct(buf)
	if err != nil {
		return nil, nil, err
	}
	if p.ColorCount <= distinct {
		if buf, err = Quantize(buf, p.ColorCount); err != nil {
			return nil, nil, err
		}
	}

	if len(p.Mapping) > 0 {
		if buf, err = Remap(buf, p.Mapping); err != nil {
			return nil, nil, err
		}
	}

	// Every stage was skipped; hand back a copy so the caller never holds
	// the base buffer itself.
	if buf == base {
		buf = base.Clone()
	}

	palette, err := Analyze(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf, palette, nil
}
