package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// PreprocessConfig holds the tunables of the recognition-oriented
// preprocessing pass.
type PreprocessConfig struct {
	// Upscale factor applied before thresholding. Small fonts recognize
	// better when enlarged; 1 or less disables resizing.
	ScaleFactor float64

	// Gaussian sigma for noise suppression (pixels, after scaling). 1.1
	// matches a 5x5 kernel. 0 disables blurring.
	BlurSigma float64

	// Adaptive threshold block size (pixels, odd).
	BlockSize int

	// Constant subtracted from the gaussian local mean (intensity units).
	C float64
}

// DefaultPreprocessConfig returns default configuration
func DefaultPreprocessConfig() PreprocessConfig {
	return PreprocessConfig{
		ScaleFactor: 1.5,
		BlurSigma:   GaussianSigma(5),
		BlockSize:   31,
		C:           2,
	}
}

// Preprocess prepares a page for full-page recognition: grayscale, optional
// upscale with a cubic filter, gaussian noise suppression and adaptive
// gaussian thresholding. The result is black ink on white.
//
// Lighting varies across a photographed page, so the threshold is computed
// per neighbourhood rather than globally. A nil image yields nil, which
// every downstream stage treats as an empty result.
func Preprocess(img image.Image, config PreprocessConfig) *image.Gray {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	work := imaging.Grayscale(img)
	if config.ScaleFactor > 0 && config.ScaleFactor != 1 {
		w := int(float64(b.Dx()) * config.ScaleFactor)
		h := int(float64(b.Dy()) * config.ScaleFactor)
		if w > 0 && h > 0 {
			work = imaging.Resize(work, w, h, imaging.CatmullRom)
		}
	}
	if config.BlurSigma > 0 {
		work = imaging.Blur(work, config.BlurSigma)
	}

	gray := grayFromNRGBA(work, image.Point{})
	mask := AdaptiveThreshold(gray, GaussianC, config.BlockSize, config.C)
	return mask.Gray()
}
