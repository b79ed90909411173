package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/nfnt/resize"
)

var (
	// ErrInvalidWidth is returned when the requested character width is not positive.
	ErrInvalidWidth = errors.New("imaging: target width must be positive")

	// ErrInvalidBounds is returned when the source image has no pixels to sample.
	ErrInvalidBounds = errors.New("imaging: source image has non-positive dimensions")

	// ErrUnsupportedFormat is returned when the input bytes cannot be decoded
	// by any registered image format.
	ErrUnsupportedFormat = errors.New("imaging: unrecognized image format")
)

// Decode reads an image from r. JPEG, PNG, GIF, BMP, TIFF and WebP decoders
// are registered by this package.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrUnsupportedFormat
		}
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	return img, nil
}

// Normalize resizes img to width characters, preserving aspect ratio, and
// converts the result to single-channel grayscale. The output height is the
// source height scaled by the width ratio, rounded, with a floor of one row.
func Normalize(img image.Image, width int) (*image.Gray, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}

	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, ErrInvalidBounds
	}

	height := scaledHeight(srcW, srcH, width)
	scaled := resize.Resize(uint(width), uint(height), img, resize.Lanczos3)

	return Grayscale(scaled), nil
}

// Grayscale converts img to an 8-bit single-channel image using the standard
// library's grayscale model.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(gray, gray.Bounds(), img, bounds.Min, draw.Src)
	return gray
}

// scaledHeight rounds half away from zero, matching int(round(h * w/w0)).
func scaledHeight(srcW, srcH, width int) int {
	h := int(math.Round(float64(srcH) * float64(width) / float64(srcW)))
	if h < 1 {
		h = 1
	}
	return h
}
