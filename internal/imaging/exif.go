package imaging

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
)

// OrientationUpright is the EXIF orientation meaning "no correction needed".
const OrientationUpright = 1

const (
	jpegMarkerPrefix = 0xFF
	jpegSOI          = 0xD8
	jpegAPP1         = 0xE1
	exifOrientation  = 0x0112
)

var errNotJPEG = errors.New("imaging: not a JPEG stream")

// ReadOrientation scans a JPEG stream for the EXIF orientation tag (1-8).
// It returns OrientationUpright when the stream carries no orientation, and
// an error when the stream is not a JPEG or the EXIF payload is malformed.
// Non-JPEG formats have no orientation metadata worth correcting here.
func ReadOrientation(r io.ReadSeeker) (int, error) {
	var soi [2]byte
	if _, err := io.ReadFull(r, soi[:]); err != nil {
		return OrientationUpright, fmt.Errorf("imaging: read SOI: %w", err)
	}
	if soi[0] != jpegMarkerPrefix || soi[1] != jpegSOI {
		return OrientationUpright, errNotJPEG
	}

	for {
		var marker [2]byte
		if _, err := io.ReadFull(r, marker[:]); err != nil {
			return OrientationUpright, nil
		}
		if marker[0] != jpegMarkerPrefix {
			return OrientationUpright, errors.New("imaging: invalid JPEG segment marker")
		}

		var lenBytes [2]byte
		if _, err := io.ReadFull(r, lenBytes[:]); err != nil {
			return OrientationUpright, nil
		}
		segLen := int(binary.BigEndian.Uint16(lenBytes[:])) - 2
		if segLen < 0 {
			return OrientationUpright, errors.New("imaging: invalid JPEG segment length")
		}

		if marker[1] != jpegAPP1 {
			if _, err := r.Seek(int64(segLen), io.SeekCurrent); err != nil {
				return OrientationUpright, nil
			}
			continue
		}

		payload := make([]byte, segLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return OrientationUpright, nil
		}
		if len(payload) < 6 || string(payload[:6]) != "Exif\x00\x00" {
			continue
		}

		orientation, err := parseTIFFOrientation(payload[6:])
		if err != nil {
			return OrientationUpright, err
		}
		return orientation, nil
	}
}

// parseTIFFOrientation walks IFD0 of a TIFF payload looking for tag 0x0112.
func parseTIFFOrientation(tiff []byte) (int, error) {
	if len(tiff) < 8 {
		return OrientationUpright, errors.New("imaging: truncated TIFF header")
	}

	var order binary.ByteOrder
	switch string(tiff[:2]) {
	case "II":
		order = binary.LittleEndian
	case "MM":
		order = binary.BigEndian
	default:
		return OrientationUpright, errors.New("imaging: unknown TIFF byte order")
	}

	if order.Uint16(tiff[2:4]) != 42 {
		return OrientationUpright, errors.New("imaging: bad TIFF magic")
	}

	ifdOffset := int(order.Uint32(tiff[4:8]))
	if ifdOffset+2 > len(tiff) {
		return OrientationUpright, errors.New("imaging: IFD offset out of range")
	}

	entries := int(order.Uint16(tiff[ifdOffset : ifdOffset+2]))
	for i := 0; i < entries; i++ {
		entry := ifdOffset + 2 + i*12
		if entry+12 > len(tiff) {
			break
		}
		if order.Uint16(tiff[entry:entry+2]) == exifOrientation {
			orientation := int(order.Uint16(tiff[entry+8 : entry+10]))
			if orientation < 1 || orientation > 8 {
				return OrientationUpright, fmt.Errorf("imaging: orientation %d out of range", orientation)
			}
			return orientation, nil
		}
	}

	return OrientationUpright, nil
}

// ApplyOrientation returns img corrected for the given EXIF orientation.
// Unknown values and OrientationUpright return the image unchanged.
func ApplyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return flipH(img)
	case 3:
		return rotate180(img)
	case 4:
		return flipV(img)
	case 5:
		return transpose(img)
	case 6:
		return rotate90(img)
	case 7:
		return transverse(img)
	case 8:
		return rotate270(img)
	}
	return img
}

func flipH(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func flipV(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(x, h-1-y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate90(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, x, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate180(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(w-1-x, h-1-y, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

func rotate270(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// transpose mirrors across the top-left to bottom-right diagonal.
func transpose(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, x, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}

// transverse mirrors across the top-right to bottom-left diagonal.
func transverse(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(h-1-y, w-1-x, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
