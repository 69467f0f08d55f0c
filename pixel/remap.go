package pixel

// Remap substitutes exact colors in b according to the mapping. Colors not
// present in the mapping are left alone, as are entries that fail to parse.
// Alpha is untouched. An empty mapping returns an unchanged copy.
//
// Remapping runs after quantization in the pipeline, so mapping keys match
// against quantized colors, not the colors of the original image.
func Remap(b *Buffer, m Mapping) (*Buffer, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	out := b.Clone()
	table := m.compile()
	if len(table) == 0 {
		return out, nil
	}

	for i := 0; i < len(out.Pix); i += channels {
		k := MakeKey(out.Pix[i+0], out.Pix[i+1], out.Pix[i+2])
		if dst, ok := table[k]; ok {
			r, g, b := dst.RGB()
			out.Pix[i+0] = r
			out.Pix[i+1] = g
			out.Pix[i+2] = b
		}
	}
	return out, nil
}
