package converter

import (
	"io"
	"strings"
)

// Frame is the assembled ASCII rendition of a single image. Lines are stored
// top row first; every line is exactly the frame width in glyphs.
type Frame struct {
	width int
	lines []string
}

// assembleFrame partitions the flat grayscale pixel sequence into rows of
// width glyphs. pix is expected in row-major order with the given stride.
func assembleFrame(pix []byte, stride, width, height int, ramp Ramp) *Frame {
	lines := make([]string, 0, height)
	var b strings.Builder

	for y := 0; y < height; y++ {
		b.Reset()
		b.Grow(width)
		row := pix[y*stride : y*stride+width]
		for _, p := range row {
			b.WriteRune(ramp.Glyph(int(p)))
		}
		lines = append(lines, b.String())
	}

	return &Frame{width: width, lines: lines}
}

// Width returns the frame width in glyphs.
func (f *Frame) Width() int { return f.width }

// Height returns the number of rows.
func (f *Frame) Height() int { return len(f.lines) }

// Lines returns a copy of the frame's rows, top row first.
func (f *Frame) Lines() []string {
	return append([]string(nil), f.lines...)
}

// String renders the frame with one row per line and a trailing newline.
func (f *Frame) String() string {
	if len(f.lines) == 0 {
		return ""
	}
	return strings.Join(f.lines, "\n") + "\n"
}

// WriteTo writes the frame to w, duplicating each row when stretch is set.
// Row duplication compensates for terminal cells being roughly twice as tall
// as they are wide.
func (f *Frame) WriteTo(w io.Writer, stretch bool) error {
	for _, line := range f.lines {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
		if stretch {
			if _, err := io.WriteString(w, line+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Stretch duplicates each line immediately after itself.
func Stretch(lines []string) []string {
	out := make([]string, 0, len(lines)*2)
	for _, line := range lines {
		out = append(out, line, line)
	}
	return out
}
