package geom

// Rect represents a rectangle with position and dimensions.
// Positions are relative to the parent's content origin.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromSize returns a Rect at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Location returns the rectangle's top-left corner.
func (r Rect) Location() Point {
	return Point{X: r.X, Y: r.Y}
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Offset returns r translated by p.
func (r Rect) Offset(p Point) Rect {
	r.X += p.X
	r.Y += p.Y
	return r
}

// Close reports whether both rectangles match within epsilon.
func (r Rect) Close(other Rect) bool {
	return closeTo(r.X, other.X) && closeTo(r.Y, other.Y) &&
		closeTo(r.Width, other.Width) && closeTo(r.Height, other.Height)
}

// IsNaN reports whether any component is NaN.
func (r Rect) IsNaN() bool {
	return r.Location().IsNaN() || r.Size().IsNaN()
}
