package geom

import "math"

// Size represents a width/height pair.
type Size struct {
	Width, Height float64
}

// Unbounded returns a Size that places no limit on either axis.
func Unbounded() Size {
	return Size{Width: math.Inf(1), Height: math.Inf(1)}
}

// IsNaN reports whether either dimension is NaN.
func (s Size) IsNaN() bool {
	return math.IsNaN(s.Width) || math.IsNaN(s.Height)
}

// IsUnboundedWidth reports whether the width is positive infinity.
func (s Size) IsUnboundedWidth() bool {
	return math.IsInf(s.Width, 1)
}

// IsUnboundedHeight reports whether the height is positive infinity.
func (s Size) IsUnboundedHeight() bool {
	return math.IsInf(s.Height, 1)
}

// Close reports whether both dimensions are within a small epsilon of other.
// Infinite dimensions compare equal only to the same infinity.
func (s Size) Close(other Size) bool {
	return closeTo(s.Width, other.Width) && closeTo(s.Height, other.Height)
}

// Max returns the per-axis maximum of s and other.
func (s Size) Max(other Size) Size {
	return Size{Width: math.Max(s.Width, other.Width), Height: math.Max(s.Height, other.Height)}
}

// Deflate shrinks s by the given edges, flooring each axis at zero.
// Infinite axes stay infinite.
func (s Size) Deflate(e Edges) Size {
	return Size{
		Width:  math.Max(0, s.Width-e.Horizontal()),
		Height: math.Max(0, s.Height-e.Vertical()),
	}
}

// Inflate grows s by the given edges.
func (s Size) Inflate(e Edges) Size {
	return Size{Width: s.Width + e.Horizontal(), Height: s.Height + e.Vertical()}
}

const epsilon = 1.53e-06

func closeTo(a, b float64) bool {
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	return math.Abs(a-b) < epsilon
}

// AreClose reports whether a and b are equal within the epsilon used by
// Size.Close.
func AreClose(a, b float64) bool {
	return closeTo(a, b)
}
