//go:build !gocv

package raster

// Dilate grows foreground: a cell is set when any cell under the kernel is
// set. Cells outside the mask never contribute.
func Dilate(m *Mask, k Kernel) *Mask {
	if m == nil {
		return nil
	}
	k = k.normalize()
	out := slideHorizontal(m, k.Width, dilateRule)
	return slideVertical(out, k.Height, dilateRule)
}

// Erode shrinks foreground: a cell stays set only when every in-bounds cell
// under the kernel is set. Cells outside the mask do not erode the border.
func Erode(m *Mask, k Kernel) *Mask {
	if m == nil {
		return nil
	}
	k = k.normalize()
	out := slideHorizontal(m, k.Width, erodeRule)
	return slideVertical(out, k.Height, erodeRule)
}

// Open is an erosion followed by a dilation with the same kernel. It
// removes foreground structures smaller than the kernel while keeping
// larger ones at their original extent.
func Open(m *Mask, k Kernel) *Mask {
	return Dilate(Erode(m, k), k)
}

// windowRule decides a cell from the count of set cells in its window and
// the number of in-bounds cells in that window.
type windowRule func(set, inBounds int) bool

func dilateRule(set, _ int) bool       { return set > 0 }
func erodeRule(set, inBounds int) bool { return set == inBounds }

// slideHorizontal applies rule along each row with a window of size n anchored at n/2.
func slideHorizontal(m *Mask, n int, rule windowRule) *Mask {
	out := NewMask(m.Width, m.Height)
	if n <= 1 {
		copy(out.Pix, m.Pix)
		return out
	}
	a := n / 2
	prefix := make([]int, m.Width+1)
	for y := 0; y < m.Height; y++ {
		row := m.Pix[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			prefix[x+1] = prefix[x]
			if v {
				prefix[x+1]++
			}
		}
		for x := 0; x < m.Width; x++ {
			lo := clampInt(x-a, 0, m.Width)
			hi := clampInt(x-a+n, 0, m.Width)
			out.Pix[y*m.Width+x] = rule(prefix[hi]-prefix[lo], hi-lo)
		}
	}
	return out
}

// slideVertical applies rule down each column with a window of size n.
func slideVertical(m *Mask, n int, rule windowRule) *Mask {
	if n <= 1 {
		return m
	}
	out := NewMask(m.Width, m.Height)
	a := n / 2
	prefix := make([]int, m.Height+1)
	for x := 0; x < m.Width; x++ {
		for y := 0; y < m.Height; y++ {
			prefix[y+1] = prefix[y]
			if m.Pix[y*m.Width+x] {
				prefix[y+1]++
			}
		}
		for y := 0; y < m.Height; y++ {
			lo := clampInt(y-a, 0, m.Height)
			hi := clampInt(y-a+n, 0, m.Height)
			out.Pix[y*m.Width+x] = rule(prefix[hi]-prefix[lo], hi-lo)
		}
	}
	return out
}
