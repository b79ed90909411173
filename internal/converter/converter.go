package converter

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"

	"github.com/halfwidth/asciipress/internal/imaging"
)

const (
	optionsInvalidCode = "ASCII_OPTIONS_INVALID"
	imageNotFoundCode  = "IMAGE_NOT_FOUND"
	imageInvalidCode   = "IMAGE_INVALID"
)

// Options configures a Converter. The zero value is not usable; start from
// DefaultOptions and override fields as needed.
type Options struct {
	// Width is the output width in characters.
	Width int
	// Ramp orders glyphs lightest to darkest.
	Ramp string
	// Invert reverses the ramp so the darkest glyph comes first.
	Invert bool
	// Stretch duplicates each output row to compensate for character aspect.
	Stretch bool
}

// DefaultOptions mirrors the CLI defaults: 100 characters wide, the standard
// nine-glyph ramp, no inversion, no stretching.
func DefaultOptions() Options {
	return Options{Width: 100, Ramp: DefaultRamp}
}

// Validate checks option ranges once, before any pipeline work happens.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Width, validation.Required, validation.Min(1)),
		validation.Field(&o.Ramp, validation.Required),
	)
}

// Converter runs the image-to-ASCII pipeline: orientation correction,
// aspect-preserving resize, grayscale conversion, then per-pixel glyph
// mapping and row assembly. A Converter is immutable after construction and
// safe for reuse across images.
type Converter struct {
	opts Options
	ramp Ramp
	log  glog.Logger
}

// Option customises a Converter beyond its validated Options.
type Option func(*Converter)

// WithLogger attaches a logger used for non-fatal diagnostics, such as
// unreadable EXIF metadata.
func WithLogger(lgr glog.Logger) Option {
	return func(c *Converter) {
		c.log = lgr
	}
}

// New validates opts and builds a Converter.
func New(opts Options, cfgs ...Option) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid converter options").
			WithTextCode(optionsInvalidCode)
	}

	ramp, err := ParseRamp(opts.Ramp)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid glyph ramp").
			WithTextCode(optionsInvalidCode)
	}
	if opts.Invert {
		ramp = ramp.Reversed()
	}

	c := &Converter{opts: opts, ramp: ramp}
	for _, cfg := range cfgs {
		cfg(c)
	}
	return c, nil
}

// Options returns the validated options the converter was built with.
func (c *Converter) Options() Options { return c.opts }

// Convert maps an already-decoded image to an ASCII frame. EXIF orientation
// is not applied here; callers holding the raw bytes should prefer
// ConvertBytes, ConvertReader or ConvertFile.
func (c *Converter) Convert(img image.Image) (*Frame, error) {
	gray, err := imaging.Normalize(img, c.opts.Width)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "normalize image").
			WithTextCode(imageInvalidCode)
	}

	bounds := gray.Bounds()
	return assembleFrame(gray.Pix, gray.Stride, bounds.Dx(), bounds.Dy(), c.ramp), nil
}

// ConvertReader decodes an image from r and converts it. The stream is read
// fully so EXIF orientation can be inspected before decoding.
func (c *Converter) ConvertReader(r io.Reader) (*Frame, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("converter: read image: %w", err)
	}
	return c.ConvertBytes(data)
}

// ConvertBytes decodes an image from data and converts it, applying any EXIF
// orientation the stream carries.
func (c *Converter) ConvertBytes(data []byte) (*Frame, error) {
	orientation := imaging.OrientationUpright
	if o, err := imaging.ReadOrientation(bytes.NewReader(data)); err == nil {
		orientation = o
	} else if c.log != nil {
		c.log.Debug("no EXIF orientation applied", "error", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return c.Convert(imaging.ApplyOrientation(img, orientation))
}

// Render writes the frame to w, honouring the converter's stretch option.
func (c *Converter) Render(w io.Writer, f *Frame) error {
	return f.WriteTo(w, c.opts.Stretch)
}

// ConvertFile opens, decodes and converts the image at path.
func (c *Converter) ConvertFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerrors.Wrap(err, goerrors.CategoryNotFound, "image file not found").
				WithTextCode(imageNotFoundCode)
		}
		return nil, fmt.Errorf("converter: open %s: %w", path, err)
	}
	defer f.Close()

	return c.ConvertReader(f)
}
