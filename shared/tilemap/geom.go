package tilemap

import "math"

// Point is a position in world pixels.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. Width or Height may be negative on a
// source rectangle to request mirroring.
type Rect struct {
	X, Y, Width, Height float64
}

// Overlaps reports whether r and o share any area. Touching edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && r.X+r.Width > o.X &&
		r.Y < o.Y+o.Height && r.Y+r.Height > o.Y
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Abs returns r with non-negative width and height.
func (r Rect) Abs() Rect {
	return Rect{X: r.X, Y: r.Y, Width: math.Abs(r.Width), Height: math.Abs(r.Height)}
}
