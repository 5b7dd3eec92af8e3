// Package core provides the small shared vocabulary of the game: canvas
// geometry, the input intent record, sound names and the character screen
// used by the terminal front end. It has no external dependencies so the
// simulation packages can import it freely.
package core

// Vec is a point or displacement in display units (pixels).
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v multiplied by k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Canvas is the bounded play field in display units.
// It is fixed for the duration of a run.
type Canvas struct {
	W, H float64
}

// Contains reports whether p lies inside the canvas expanded by margin on
// every side.
func (c Canvas) Contains(p Vec, margin float64) bool {
	return p.X >= -margin && p.X <= c.W+margin && p.Y >= -margin && p.Y <= c.H+margin
}

// Rect is an axis-aligned rectangle in screen cells, used for overlays.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Centered returns a w x h rectangle centered inside r.
func (r Rect) Centered(w, h int) Rect {
	return Rect{X: r.X + (r.W-w)/2, Y: r.Y + (r.H-h)/2, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
