package raster

// Kernel is a rectangular structuring element. The anchor is the kernel
// centre (Width/2, Height/2).
type Kernel struct {
	Width  int
	Height int
}

func (k Kernel) normalize() Kernel {
	if k.Width < 1 {
		k.Width = 1
	}
	if k.Height < 1 {
		k.Height = 1
	}
	return k
}
