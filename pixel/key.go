package pixel

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a color identity packed as 0xRRGGBB. Alpha never participates in
// color identity.
type Key uint32

// MakeKey packs three channel values into a Key.
func MakeKey(r, g, b uint8) Key {
	return Key(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB unpacks the key into its channel values.
func (k Key) RGB() (r, g, b uint8) {
	return uint8(k >> 16), uint8(k >> 8), uint8(k)
}

// Hex renders the key as a lowercase "#rrggbb" string.
func (k Key) Hex() string {
	return fmt.Sprintf("#%06x", uint32(k))
}

// ParseKey parses a 6-hex-digit color with an optional leading "#".
// Parsing is case-insensitive.
func ParseKey(s string) (Key, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("pixel: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("pixel: invalid color %q", s)
	}
	return Key(v), nil
}

// Mapping is a substitution table from one exact color to another. Keys and
// values are hex strings as edited by the user; entries that do not parse as
// 6-hex-digit colors are ignored.
type Mapping map[string]string

// compile resolves the textual mapping into packed keys, dropping entries
// whose source or target does not parse.
func (m Mapping) compile() map[Key]Key {
	if len(m) == 0 {
		return nil
	}
	table := make(map[Key]Key, len(m))
	for src, dst := range m {
		sk, err := ParseKey(src)
		if err != nil {
			continue
		}
		dk, err := ParseKey(dst)
		if err != nil {
			continue
		}
		table[sk] = dk
	}
	return table
}
