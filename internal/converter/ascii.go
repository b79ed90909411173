package converter

import "errors"

// DefaultRamp orders glyphs lightest to darkest.
const DefaultRamp = ".:-=+*#%@"

// ErrEmptyRamp is returned when a glyph ramp has no characters.
var ErrEmptyRamp = errors.New("converter: glyph ramp must not be empty")

// Ramp is an ordered sequence of glyphs, lightest first.
type Ramp []rune

// ParseRamp validates and converts a ramp string.
func ParseRamp(s string) (Ramp, error) {
	ramp := Ramp(s)
	if len(ramp) == 0 {
		return nil, ErrEmptyRamp
	}
	return ramp, nil
}

// Reversed returns a copy of the ramp with darkest glyph first.
func (r Ramp) Reversed() Ramp {
	out := make(Ramp, len(r))
	for i, g := range r {
		out[len(r)-1-i] = g
	}
	return out
}

// Glyph maps an intensity to one glyph. Intensity is clamped to [0, 255];
// 255 maps to the first (lightest) glyph and 0 to the last (darkest).
// Integer division truncates, so neighbouring intensities collapse onto the
// same glyph whenever the ramp is shorter than 256 entries.
func (r Ramp) Glyph(v int) rune {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	last := len(r) - 1
	return r[last-v*last/255]
}
