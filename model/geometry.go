package model

import (
	"image"
	"math"
)

// Point represents a 2D point in image coordinates.
type Point struct {
	X, Y float64
}

// Region represents an axis-aligned rectangle in image pixel coordinates.
// X and Y are the top-left corner; the origin is the top-left of the image.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRegion creates a region from coordinates
func NewRegion(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// RegionFromRect converts an image.Rectangle to a Region.
func RegionFromRect(r image.Rectangle) Region {
	r = r.Canon()
	return Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// ClipRegion clips a region to the given bounds. The result never has a
// negative origin or size and always lies within bounds.
func ClipRegion(r Region, bounds image.Rectangle) Region {
	return RegionFromRect(r.Rect().Intersect(bounds))
}

// Right returns the exclusive right edge X coordinate
func (r Region) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge Y coordinate
func (r Region) Bottom() int {
	return r.Y + r.Height
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// Center returns the center point
func (r Region) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// Contains checks if a point is inside the region
func (r Region) Contains(p Point) bool {
	return p.X >= float64(r.X) && p.X < float64(r.Right()) &&
		p.Y >= float64(r.Y) && p.Y < float64(r.Bottom())
}

// ContainsRegion reports whether other lies entirely inside r.
func (r Region) ContainsRegion(other Region) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Overlaps reports whether two regions share any pixel.
func (r Region) Overlaps(other Region) bool {
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Intersect returns the intersection of two regions, or the zero region
// when they do not overlap.
func (r Region) Intersect(other Region) Region {
	return RegionFromRect(r.Rect().Intersect(other.Rect()))
}

// Union returns the smallest region containing both regions
func (r Region) Union(other Region) Region {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return RegionFromRect(r.Rect().Union(other.Rect()))
}

// Area returns the area of the region in pixels
func (r Region) Area() int {
	return r.Width * r.Height
}

// IsEmpty returns true if the region has zero area
func (r Region) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// BoxFromPolygon returns the bounding region of a 4- or 8-point polygon as
// reported by recognition engines. Coordinates are floored/ceiled outward.
func BoxFromPolygon(points []Point) Region {
	if len(points) == 0 {
		return Region{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	x, y := int(math.Floor(minX)), int(math.Floor(minY))
	return Region{
		X:      x,
		Y:      y,
		Width:  int(math.Ceil(maxX)) - x,
		Height: int(math.Ceil(maxY)) - y,
	}
}

// ColumnSet is the ordered set of column bands found on a page.
// Regions are sorted by X, strictly increasing and mutually non-overlapping.
type ColumnSet struct {
	Regions []Region

	// Fallback is true when detection found too little evidence and the
	// page width was split evenly instead.
	Fallback bool
}

// Len returns the number of columns
func (c ColumnSet) Len() int {
	return len(c.Regions)
}

// RowBand is a cluster of vertically adjacent detection boxes that make up
// one logical table row.
type RowBand struct {
	Boxes []Region
}

// Y returns the y-coordinate of the band's first member.
func (b RowBand) Y() int {
	if len(b.Boxes) == 0 {
		return 0
	}
	return b.Boxes[0].Y
}

// Bounds returns the union of all member boxes.
func (b RowBand) Bounds() Region {
	var u Region
	for _, box := range b.Boxes {
		u = u.Union(box)
	}
	return u
}
