//go:build !gocv

package raster

import (
	"github.com/tsawler/scantable/model"
)

// ExternalBoxes returns the bounding boxes of the outermost foreground
// components of m. Components are 8-connected; background is 4-connected.
// A component that sits inside a hole of another component is not
// external and is skipped, so text inside a ruled box is reported as the
// box only. Boxes are returned in scan order of their first pixel.
func ExternalBoxes(m *Mask) []model.Region {
	if m == nil || m.Width == 0 || m.Height == 0 {
		return nil
	}
	w, h := m.Width, m.Height

	labels, boxes := labelComponents(m)
	if len(boxes) == 0 {
		return nil
	}
	outer := outerBackground(m)

	external := make([]bool, len(boxes))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lbl := labels[y*w+x]
			if lbl < 0 || external[lbl] {
				continue
			}
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				external[lbl] = true
				continue
			}
			for _, d := range neighbours4 {
				i := (y+d[1])*w + x + d[0]
				if !m.Pix[i] && outer[i] {
					external[lbl] = true
					break
				}
			}
		}
	}

	var result []model.Region
	for i, b := range boxes {
		if external[i] {
			result = append(result, b)
		}
	}
	return result
}

var neighbours4 = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

var neighbours8 = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// labelComponents assigns every foreground cell the index of its
// 8-connected component (-1 for background) and returns each component's
// bounding box.
func labelComponents(m *Mask) ([]int32, []model.Region) {
	w, h := m.Width, m.Height
	labels := make([]int32, w*h)
	for i := range labels {
		labels[i] = -1
	}

	var boxes []model.Region
	stack := make([]int, 0, 64)
	for start, v := range m.Pix {
		if !v || labels[start] >= 0 {
			continue
		}
		lbl := int32(len(boxes))
		minX, minY := start%w, start/w
		maxX, maxY := minX, minY

		labels[start] = lbl
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := i%w, i/w
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			for _, d := range neighbours8 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || ny < 0 || nx >= w || ny >= h {
					continue
				}
				j := ny*w + nx
				if m.Pix[j] && labels[j] < 0 {
					labels[j] = lbl
					stack = append(stack, j)
				}
			}
		}
		boxes = append(boxes, model.Region{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1})
	}
	return labels, boxes
}

// outerBackground marks background cells 4-connected to the image border.
// Background not reached is a hole inside some component.
func outerBackground(m *Mask) []bool {
	w, h := m.Width, m.Height
	outer := make([]bool, w*h)
	stack := make([]int, 0, 2*(w+h))

	push := func(i int) {
		if !m.Pix[i] && !outer[i] {
			outer[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		push(x)
		push((h-1)*w + x)
	}
	for y := 0; y < h; y++ {
		push(y * w)
		push(y*w + w - 1)
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := i%w, i/w
		for _, d := range neighbours4 {
			nx, ny := x+d[0], y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			push(ny*w + nx)
		}
	}
	return outer
}
