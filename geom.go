// geom.go re-exports geometry types from internal/geom.
// Any changes to internal/geom types must be mirrored here.
package layout

import "github.com/grindlemire/go-layout/internal/geom"

// Size represents a width/height pair. Either axis may be +Inf in a
// constraint to mean unbounded.
type Size = geom.Size

// Rect represents a rectangle with position and dimensions.
type Rect = geom.Rect

// Point represents an x/y coordinate.
type Point = geom.Point

// Edges represents spacing on four sides (top, right, bottom, left).
type Edges = geom.Edges

// Value represents a dimension value (fixed, percent, or auto).
type Value = geom.Value

// Unit specifies how a Value is interpreted.
type Unit = geom.Unit

const (
	UnitAuto    = geom.UnitAuto
	UnitFixed   = geom.UnitFixed
	UnitPercent = geom.UnitPercent
)

// Unbounded returns a constraint with no limit on either axis.
func Unbounded() Size {
	return geom.Unbounded()
}

// NewRect creates a new Rect with the given position and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return geom.NewRect(x, y, width, height)
}

// Fixed creates a Value with an absolute size.
func Fixed(n float64) Value {
	return geom.Fixed(n)
}

// Percent creates a Value representing a percentage of available space.
func Percent(p float64) Value {
	return geom.Percent(p)
}

// Auto creates a Value that sizes to content.
func Auto() Value {
	return geom.Auto()
}

// EdgeAll creates Edges with the same value on all sides.
func EdgeAll(n float64) Edges {
	return geom.EdgeAll(n)
}

// EdgeSymmetric creates Edges with vertical (top/bottom) and horizontal (left/right) values.
func EdgeSymmetric(v, h float64) Edges {
	return geom.EdgeSymmetric(v, h)
}
