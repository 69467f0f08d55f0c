package pixel

import "sort"

// Entry is one palette row: a color and how many pixels carry it.
type Entry struct {
	Color Key
	Count int
}

// Analyze scans b once in row-major order and returns its palette sorted by
// count, most frequent first. Colors with equal counts keep the order in
// which they were first seen during the scan.
func Analyze(b *Buffer) ([]Entry, error) {
	if err := b.check(); err != nil {
		return nil, err
	}

	index := make(map[Key]int)
	var entries []Entry
	for i := 0; i < len(b.Pix); i += channels {
		k := MakeKey(b.Pix[i+0], b.Pix[i+1], b.Pix[i+2])
		if j, ok := index[k]; ok {
			entries[j].Count++
		} else {
			index[k] = len(entries)
			entries = append(entries, Entry{Color: k, Count: 1})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries, nil
}

// Distinct counts the unique colors in b, ignoring alpha.
func Distinct(b *Buffer) (int, error) {
	if err := b.check(); err != nil {
		return 0, err
	}

	seen := make(map[Key]struct{})
	for i := 0; i < len(b.Pix); i += channels {
		seen[MakeKey(b.Pix[i+0], b.Pix[i+1], b.Pix[i+2])] = struct{}{}
	}
	return len(seen), nil
}
