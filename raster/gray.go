package raster

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/tsawler/scantable/model"
)

// InkLevel is the intensity at or below which a pixel counts as ink when
// measuring ink density (0-255).
const InkLevel = 150

// ToGray converts any image to single-channel intensity using ITU-R 601
// luma weights. A nil image yields nil, the "no image" sentinel.
func ToGray(img image.Image) *image.Gray {
	if img == nil {
		return nil
	}
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	nrgba := imaging.Grayscale(img)
	return grayFromNRGBA(nrgba, img.Bounds().Min)
}

// grayFromNRGBA copies the red channel of an already-gray NRGBA image into
// an image.Gray placed at origin.
func grayFromNRGBA(src *image.NRGBA, origin image.Point) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()).Add(origin))
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride:]
		dstRow := dst.Pix[y*dst.Stride:]
		for x := 0; x < b.Dx(); x++ {
			dstRow[x] = srcRow[x*4]
		}
	}
	return dst
}

// Crop returns the part of gray covered by region, keeping absolute image
// coordinates. The region is clipped to the image first. Returns nil when
// the clipped region is empty.
func Crop(gray *image.Gray, region model.Region) *image.Gray {
	if gray == nil {
		return nil
	}
	r := model.ClipRegion(region, gray.Bounds())
	if r.IsEmpty() {
		return nil
	}
	return gray.SubImage(r.Rect()).(*image.Gray)
}

// InkDensity returns the fraction of pixels at or below level. Used as a
// proxy for whether text or a signature is present on a page.
func InkDensity(gray *image.Gray, level uint8) float64 {
	if gray == nil {
		return 0
	}
	b := gray.Bounds()
	total := b.Dx() * b.Dy()
	if total == 0 {
		return 0
	}

	ink := 0
	for y := 0; y < b.Dy(); y++ {
		row := gray.Pix[y*gray.Stride : y*gray.Stride+b.Dx()]
		for _, v := range row {
			if v <= level {
				ink++
			}
		}
	}
	return float64(ink) / float64(total)
}
