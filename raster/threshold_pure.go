//go:build !gocv

package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// adaptiveMask marks pixels at or below their local mean minus c.
func adaptiveMask(gray *image.Gray, method ThresholdMethod, blockSize int, c float64) *Mask {
	var local []float64
	switch method {
	case GaussianC:
		local = gaussianMean(gray, blockSize)
	default:
		local = boxMean(gray, blockSize)
	}

	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	mask := NewMask(w, h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			if float64(row[x]) <= local[y*w+x]-c {
				mask.Pix[y*w+x] = true
			}
		}
	}
	return mask
}

// gaussianMean blurs gray with a gaussian whose support matches blockSize.
func gaussianMean(gray *image.Gray, blockSize int) []float64 {
	blurred := imaging.Blur(gray, GaussianSigma(blockSize))
	b := blurred.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := blurred.Pix[y*blurred.Stride:]
		for x := 0; x < w; x++ {
			out[y*w+x] = float64(row[x*4])
		}
	}
	return out
}

// boxMean computes the rounded mean of each blockSize x blockSize window
// with two separable running-sum passes and replicated borders.
func boxMean(gray *image.Gray, blockSize int) []float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	r := blockSize / 2

	horiz := make([]int, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		sum := 0
		for j := -r; j <= r; j++ {
			sum += int(row[clampInt(j, 0, w-1)])
		}
		for x := 0; x < w; x++ {
			horiz[y*w+x] = sum
			sum += int(row[clampInt(x+r+1, 0, w-1)]) - int(row[clampInt(x-r, 0, w-1)])
		}
	}

	area := blockSize * blockSize
	out := make([]float64, w*h)
	for x := 0; x < w; x++ {
		sum := 0
		for j := -r; j <= r; j++ {
			sum += horiz[clampInt(j, 0, h-1)*w+x]
		}
		for y := 0; y < h; y++ {
			out[y*w+x] = float64((sum + area/2) / area)
			sum += horiz[clampInt(y+r+1, 0, h-1)*w+x] - horiz[clampInt(y-r, 0, h-1)*w+x]
		}
	}
	return out
}
