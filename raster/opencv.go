//go:build gocv

// This file backs the mask operations with OpenCV through gocv. It
// requires OpenCV 4 to be installed. Build with:
//
//	go build -tags gocv
//
// Without the tag the pure Go implementations are used. Morphology, boxes
// and the mean threshold match them exactly. The gaussian threshold truncates
// its kernel at the block size, so stroke edges can differ by a pixel.

package raster

import (
	"image"
	"runtime"
	"sort"

	"gocv.io/x/gocv"

	"github.com/tsawler/scantable/model"
)

// Dilate grows foreground: a cell is set when any cell under the kernel is
// set. Cells outside the mask never contribute.
func Dilate(m *Mask, k Kernel) *Mask {
	if m == nil {
		return nil
	}
	return morph(m, k, func(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat) {
		gocv.Dilate(src, dst, kernel)
	})
}

// Erode shrinks foreground: a cell stays set only when every in-bounds cell
// under the kernel is set. Cells outside the mask do not erode the border.
func Erode(m *Mask, k Kernel) *Mask {
	if m == nil {
		return nil
	}
	return morph(m, k, func(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat) {
		gocv.Erode(src, dst, kernel)
	})
}

// Open is an erosion followed by a dilation with the same kernel. It
// removes foreground structures smaller than the kernel while keeping
// larger ones at their original extent.
func Open(m *Mask, k Kernel) *Mask {
	if m == nil {
		return nil
	}
	return morph(m, k, func(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat) {
		gocv.MorphologyEx(src, dst, gocv.MorphOpen, kernel)
	})
}

func morph(m *Mask, k Kernel, op func(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat)) *Mask {
	if m.Width == 0 || m.Height == 0 {
		return NewMask(m.Width, m.Height)
	}
	k = k.normalize()

	src, err := maskMat(m)
	if err != nil {
		return NewMask(m.Width, m.Height)
	}
	defer src.Close()
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(k.Width, k.Height))
	defer kernel.Close()
	dst := gocv.NewMat()
	defer dst.Close()

	op(src, &dst, kernel)
	return maskFromMat(dst, m.Width, m.Height)
}

// ExternalBoxes returns the bounding boxes of the outermost foreground
// components of m. Components are 8-connected; background is 4-connected.
// A component that sits inside a hole of another component is not
// external and is skipped, so text inside a ruled box is reported as the
// box only. Boxes are returned in scan order of their first pixel.
func ExternalBoxes(m *Mask) []model.Region {
	if m == nil || m.Width == 0 || m.Height == 0 || m.Count() == 0 {
		return nil
	}
	src, err := maskMat(m)
	if err != nil {
		return nil
	}
	defer src.Close()

	contours := gocv.FindContours(src, gocv.RetrievalExternal, gocv.ChainApproxNone)
	defer contours.Close()

	type found struct {
		start image.Point
		box   model.Region
	}
	all := make([]found, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)
		if c.Size() == 0 {
			continue
		}
		all = append(all, found{
			start: c.At(0),
			box:   model.RegionFromRect(gocv.BoundingRect(c)),
		})
	}
	// A contour starts at the first pixel of its component in scan order.
	sort.Slice(all, func(i, j int) bool {
		if all[i].start.Y != all[j].start.Y {
			return all[i].start.Y < all[j].start.Y
		}
		return all[i].start.X < all[j].start.X
	})

	var result []model.Region
	for _, f := range all {
		result = append(result, f.box)
	}
	return result
}

// adaptiveMask marks pixels at or below their local mean minus c.
func adaptiveMask(gray *image.Gray, method ThresholdMethod, blockSize int, c float64) *Mask {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	src, err := grayMat(gray)
	if err != nil {
		return NewMask(w, h)
	}
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()

	adaptive := gocv.AdaptiveThresholdMean
	if method == GaussianC {
		adaptive = gocv.AdaptiveThresholdGaussian
	}
	gocv.AdaptiveThreshold(src, &dst, 255, adaptive, gocv.ThresholdBinaryInv, blockSize, float32(c))
	return maskFromMat(dst, w, h)
}

// grayMat copies gray into a single-channel 8-bit matrix.
func grayMat(gray *image.Gray) (gocv.Mat, error) {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	data := make([]byte, w*h)
	for y := 0; y < h; y++ {
		copy(data[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
	}
	return matFromBytes(h, w, data)
}

// maskMat renders m as a single-channel matrix with ink at 255.
func maskMat(m *Mask) (gocv.Mat, error) {
	data := make([]byte, len(m.Pix))
	for i, v := range m.Pix {
		if v {
			data[i] = 255
		}
	}
	return matFromBytes(m.Height, m.Width, data)
}

// matFromBytes returns a matrix owning a copy of data.
func matFromBytes(rows, cols int, data []byte) (gocv.Mat, error) {
	view, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8U, data)
	if err != nil {
		return gocv.Mat{}, err
	}
	defer view.Close()
	mat := view.Clone()
	runtime.KeepAlive(data)
	return mat, nil
}

// maskFromMat reads a single-channel matrix back; any non-zero cell is
// foreground.
func maskFromMat(mat gocv.Mat, w, h int) *Mask {
	out := NewMask(w, h)
	data := mat.ToBytes()
	if len(data) < w*h {
		return out
	}
	for i := range out.Pix {
		out.Pix[i] = data[i] != 0
	}
	return out
}
