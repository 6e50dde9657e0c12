package chromepdf

import (
	"encoding/json"
	"strconv"
)

// Dimension is a paper width or height, given either as a CSS length
// ("8.5in", "210mm") or as a bare number of CSS pixels.
type Dimension struct {
	text    string
	pixels  float64
	numeric bool
}

// Length returns a Dimension for a CSS length string.
func Length(s string) Dimension {
	return Dimension{text: s}
}

// Pixels returns a Dimension for a bare pixel count.
func Pixels(n float64) Dimension {
	return Dimension{pixels: n, numeric: true}
}

// Numeric reports whether d was given as a bare number.
func (d Dimension) Numeric() bool {
	return d.numeric
}

// String renders d the way a command line expects it.
func (d Dimension) String() string {
	if d.numeric {
		return FormatNumber(d.pixels)
	}
	return d.text
}

// MarshalJSON encodes numeric dimensions as JSON numbers and lengths as strings.
func (d Dimension) MarshalJSON() ([]byte, error) {
	if d.numeric {
		return json.Marshal(d.pixels)
	}
	return json.Marshal(d.text)
}

// FormatNumber renders f with the fewest digits that round-trip, so 3 is
// "3" and 0.6 is "0.6".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
