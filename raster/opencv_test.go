//go:build gocv

package raster

import (
	"image"
	"testing"
)

func TestMaskMatRoundTrip(t *testing.T) {
	m := maskFromRows(
		"#..#",
		".##.",
		"...#",
	)
	mat, err := maskMat(m)
	if err != nil {
		t.Fatalf("maskMat() error = %v", err)
	}
	defer mat.Close()

	if mat.Rows() != 3 || mat.Cols() != 4 {
		t.Fatalf("mat size = %dx%d, want 4x3", mat.Cols(), mat.Rows())
	}
	got := maskFromMat(mat, 4, 3)
	for i := range m.Pix {
		if got.Pix[i] != m.Pix[i] {
			t.Fatalf("round trip differs at %d", i)
		}
	}
}

func TestAdaptiveThreshold_SubImage(t *testing.T) {
	page := newPage(80, 80, image.Rect(50, 50, 60, 60))
	sub := page.SubImage(image.Rect(40, 40, 80, 80)).(*image.Gray)

	mask := AdaptiveThreshold(sub, MeanC, 15, 3)
	if mask.Width != 40 || mask.Height != 40 {
		t.Fatalf("mask size = %dx%d, want 40x40", mask.Width, mask.Height)
	}
	if got := mask.Count(); got != 100 {
		t.Errorf("Count() = %d, want 100", got)
	}
	if !mask.At(10, 10) || mask.At(0, 0) {
		t.Error("square should be ink in local coordinates")
	}
}
