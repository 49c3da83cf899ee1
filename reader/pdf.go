package reader

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoPageImage is returned for PDFs whose first page holds no decodable
// image, typically born-digital documents with vector text.
var ErrNoPageImage = errors.New("no page image on first page")

// FirstPageImage returns the largest image embedded on the first page of a
// PDF. Scanners store the whole page as one image, so the largest image is
// the page; smaller ones are logos or stamps.
func FirstPageImage(data []byte) (image.Image, error) {
	conf := model.NewDefaultConfiguration()
	pages, err := api.ExtractImagesRaw(bytes.NewReader(data), []string{"1"}, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	var best image.Image
	bestArea := 0
	for _, images := range pages {
		for _, img := range images {
			if img.Reader == nil || img.Thumb || img.IsImgMask {
				continue
			}
			// Width and Height are not filled in by raw extraction, so
			// the size is only known after decoding.
			decoded, err := decodeReader(img)
			if err != nil {
				continue
			}
			b := decoded.Bounds()
			if area := b.Dx() * b.Dy(); area > bestArea {
				best, bestArea = decoded, area
			}
		}
	}
	if best == nil {
		return nil, ErrNoPageImage
	}
	return best, nil
}

func decodeReader(img model.Image) (image.Image, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(img); err != nil {
		return nil, err
	}
	return Decode(buf.Bytes())
}
