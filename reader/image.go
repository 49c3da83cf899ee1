package reader

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tsawler/scantable/format"
)

// ErrUndecodable is returned when input bytes are not a readable image.
var ErrUndecodable = errors.New("undecodable image")

// Load reads the file at path and returns its page image. A missing or
// unreadable file is an I/O error; content that cannot be decoded wraps
// ErrUndecodable.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := format.DetectBytes(data)
	if f == format.Unknown {
		f = format.Detect(path)
	}
	if f == format.PDF {
		return FirstPageImage(data)
	}
	return Decode(data)
}

// Decode decodes image bytes in any registered format and applies the EXIF
// orientation tag if present.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrUndecodable)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: zero-sized image", ErrUndecodable)
	}
	return img, nil
}
