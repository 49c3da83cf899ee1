package raster

import (
	"image"
)

// Mask is a binary foreground grid in local coordinates (0,0)-(Width,Height).
// A true cell is ink.
type Mask struct {
	Width  int
	Height int
	Pix    []bool
}

// NewMask creates an empty mask
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{Width: width, Height: height, Pix: make([]bool, width*height)}
}

// At reports whether (x, y) is foreground. Out-of-range coordinates are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y*m.Width+x]
}

// Set sets the foreground value at (x, y). Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y*m.Width+x] = v
}

// Count returns the number of foreground cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.Pix {
		if v {
			n++
		}
	}
	return n
}

// ColumnCounts returns the vertical projection profile: the number of
// foreground cells in every x-column.
func (m *Mask) ColumnCounts() []int {
	counts := make([]int, m.Width)
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			if v {
				counts[x]++
			}
		}
	}
	return counts
}

// Gray renders the mask as black ink on a white background.
func (m *Mask) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for i, v := range m.Pix {
		if v {
			img.Pix[i] = 0
		} else {
			img.Pix[i] = 255
		}
	}
	return img
}
