package model

// Point represents a 2D point in source-image pixel coordinates.
type Point struct {
	X, Y int
}

// BBox represents an axis-aligned rectangle in source-image pixel
// coordinates, with Y increasing downward (Y=0 at the top of the image).
// A valid BBox satisfies X2 > X1 and Y2 > Y1.
type BBox struct {
	X1 int // Left
	Y1 int // Top
	X2 int // Right (exclusive)
	Y2 int // Bottom (exclusive)
}

// NewBBox creates a bounding box from a top-left corner and dimensions.
func NewBBox(x, y, width, height int) BBox {
	return BBox{X1: x, Y1: y, X2: x + width, Y2: y + height}
}

// Valid reports whether the box has positive width and height.
func (b BBox) Valid() bool {
	return b.X2 > b.X1 && b.Y2 > b.Y1
}

// Width returns the box width in pixels.
func (b BBox) Width() int {
	return b.X2 - b.X1
}

// Height returns the box height in pixels.
func (b BBox) Height() int {
	return b.Y2 - b.Y1
}

// Area returns the box area in square pixels.
func (b BBox) Area() int {
	return b.Width() * b.Height()
}

// AspectRatio returns width divided by height. A degenerate box with zero
// height yields 0.
func (b BBox) AspectRatio() float64 {
	h := b.Height()
	if h == 0 {
		return 0
	}
	return float64(b.Width()) / float64(h)
}

// Center returns the center point of the box.
func (b BBox) Center() Point {
	return Point{
		X: b.X1 + b.Width()/2,
		Y: b.Y1 + b.Height()/2,
	}
}

// Intersects checks if two bounding boxes overlap.
func (b BBox) Intersects(other BBox) bool {
	return b.X1 < other.X2 && other.X1 < b.X2 &&
		b.Y1 < other.Y2 && other.Y1 < b.Y2
}

// Union returns the smallest box containing both boxes.
func (b BBox) Union(other BBox) BBox {
	u := b
	if other.X1 < u.X1 {
		u.X1 = other.X1
	}
	if other.Y1 < u.Y1 {
		u.Y1 = other.Y1
	}
	if other.X2 > u.X2 {
		u.X2 = other.X2
	}
	if other.Y2 > u.Y2 {
		u.Y2 = other.Y2
	}
	return u
}

// Inset shrinks the box by the given margin on every side, clamping so that
// the result stays valid when possible.
func (b BBox) Inset(margin int) BBox {
	r := BBox{X1: b.X1 + margin, Y1: b.Y1 + margin, X2: b.X2 - margin, Y2: b.Y2 - margin}
	if !r.Valid() {
		return b
	}
	return r
}

// Expand grows the box by the given margin on every side, clamped to the
// bounds of an image of the given dimensions.
func (b BBox) Expand(margin, imageWidth, imageHeight int) BBox {
	r := BBox{X1: b.X1 - margin, Y1: b.Y1 - margin, X2: b.X2 + margin, Y2: b.Y2 + margin}
	if r.X1 < 0 {
		r.X1 = 0
	}
	if r.Y1 < 0 {
		r.Y1 = 0
	}
	if r.X2 > imageWidth {
		r.X2 = imageWidth
	}
	if r.Y2 > imageHeight {
		r.Y2 = imageHeight
	}
	return r
}
