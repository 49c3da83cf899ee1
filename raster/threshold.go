package raster

import (
	"image"
)

// ThresholdMethod selects how the local threshold surface is computed.
type ThresholdMethod int

const (
	// MeanC uses the unweighted mean of the block around each pixel.
	MeanC ThresholdMethod = iota
	// GaussianC uses a gaussian-weighted mean of the block.
	GaussianC
)

// AdaptiveThreshold binarizes gray against a locally computed threshold.
// A pixel is ink when its value is at or below the local mean minus c.
// blockSize is the side of the neighbourhood in pixels and is forced odd
// and at least 3. Borders replicate the edge pixels.
func AdaptiveThreshold(gray *image.Gray, method ThresholdMethod, blockSize int, c float64) *Mask {
	if gray == nil {
		return nil
	}
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	if gray.Bounds().Empty() {
		return NewMask(0, 0)
	}

	return adaptiveMask(gray, method, blockSize, c)
}

// GaussianSigma returns the sigma used for a gaussian kernel of the given
// size when no sigma is specified explicitly.
func GaussianSigma(size int) float64 {
	return 0.3*(float64(size-1)*0.5-1) + 0.8
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
