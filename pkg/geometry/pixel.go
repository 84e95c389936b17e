package geometry

import "math"

// Pixel is an integer screen coordinate. Y grows downwards, matching the
// window systems the viewers run on.
type Pixel struct {
	X, Y int
}

// NewPixel creates a new pixel coordinate
func NewPixel(x, y int) Pixel {
	return Pixel{X: x, Y: y}
}

// Sub returns the component-wise difference between two pixels
func (p Pixel) Sub(other Pixel) Pixel {
	return Pixel{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the euclidean distance between two pixels
func (p Pixel) Distance(other Pixel) float64 {
	d := p.Sub(other)
	return math.Hypot(float64(d.X), float64(d.Y))
}

// Rect is a pixel rectangle with Min as the top-left corner
type Rect struct {
	Min Pixel
	Max Pixel
}

// NewRect creates a normalized rectangle from two drag corners
// (positive width/height regardless of drag direction)
func NewRect(a, b Pixel) Rect {
	return Rect{
		Min: Pixel{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Pixel{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Width returns the horizontal extent
func (r Rect) Width() int {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent
func (r Rect) Height() int {
	return r.Max.Y - r.Min.Y
}

// Center returns the pixel in the middle of the rectangle
func (r Rect) Center() Pixel {
	return Pixel{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies inside the rectangle, borders included
func (r Rect) Contains(p Pixel) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Expand grows (negative margin shrinks) the rectangle on every side
func (r Rect) Expand(margin int) Rect {
	return Rect{
		Min: Pixel{X: r.Min.X - margin, Y: r.Min.Y - margin},
		Max: Pixel{X: r.Max.X + margin, Y: r.Max.Y + margin},
	}
}
